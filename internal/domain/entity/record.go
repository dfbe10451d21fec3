package entity

// Record is a back-office record identified by a numeric id.
type Record interface {
	GetID() int64
}

// RecordPtr is a pointer to a record whose id can be assigned.
type RecordPtr[T Record] interface {
	*T
	SetID(id int64)
}
