package entity

// User is a customer as seen by the back-office. Orders and TotalSent are
// snapshots and are not recomputed from order history.
type User struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone"`
	JoinDate   string  `json:"joinDate"`
	Orders     int     `json:"orders"`
	TotalSpent float64 `json:"totalSpent"`
	Blocked    bool    `json:"blocked,omitempty"`
}

func (u User) GetID() int64 { return u.ID }

// Admin is a back-office account.
type Admin struct {
	ID           int64  `json:"id"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Role         Role   `json:"role" validate:"required,oneof=admin manager support"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"createdAt"`
}

func (a Admin) GetID() int64 { return a.ID }

// Courier delivers orders within a zone.
type Courier struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Vehicle    string `json:"vehicle"`
	Zone       string `json:"zone"`
	Active     bool   `json:"active"`
	Deliveries int    `json:"deliveries"`
}

func (c Courier) GetID() int64 { return c.ID }

func (c *Courier) SetID(id int64) { c.ID = id }

// LogEntry is one line of the admin activity log.
type LogEntry struct {
	ID     int64  `json:"id"`
	Admin  string `json:"admin"`
	Action string `json:"action"`
	Target string `json:"target"`
	Time   string `json:"time"`
}

func (l LogEntry) GetID() int64 { return l.ID }
