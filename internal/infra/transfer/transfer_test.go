package transfer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veluna/internal/domain/entity"
	"veluna/internal/domain/seed"
)

func TestProductsCSV_ExportThenImport(t *testing.T) {
	products := seed.Products()[:3]

	var buf bytes.Buffer
	require.NoError(t, WriteProductsCSV(&buf, products))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,name,price,originalPrice,category,image,rating,reviews,inStock,stock", lines[0])

	got, err := ReadProductsCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := range products {
		assert.Equal(t, products[i].ID, got[i].ID)
		assert.Equal(t, products[i].Name, got[i].Name)
		assert.Equal(t, products[i].Price, got[i].Price)
		assert.Equal(t, products[i].OriginalPrice, got[i].OriginalPrice)
		assert.Equal(t, products[i].InStock, got[i].InStock)
		assert.Equal(t, products[i].Stock, got[i].Stock)
	}
}

func TestReadProductsCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []entity.Product
		wantErr string
	}{
		{
			name:  "columns in any order",
			input: "price,name,category\n150000,Yoga gilamchasi,sports\n",
			want:  []entity.Product{{Name: "Yoga gilamchasi", Price: 150000, Category: "sports", InStock: true}},
		},
		{
			name:  "blank lines skipped",
			input: "name,price\nKitob,65000\n,\n",
			want:  []entity.Product{{Name: "Kitob", Price: 65000, InStock: true}},
		},
		{
			name:  "byte order mark before header",
			input: "\uFEFFname,price\nKitob,65000\n",
			want:  []entity.Product{{Name: "Kitob", Price: 65000, InStock: true}},
		},
		{
			name:    "missing price column",
			input:   "name,category\nKitob,books\n",
			wantErr: `missing required column "price"`,
		},
		{
			name:    "bad price reports line",
			input:   "name,price\nKitob,65000\nQalam,abc\n",
			wantErr: "line 3: invalid price",
		},
		{
			name:    "missing name",
			input:   "name,price\n,100\n",
			wantErr: "line 2: name is required",
		},
		{
			name:    "negative stock",
			input:   "name,price,stock\nKitob,100,-1\n",
			wantErr: "line 2: invalid stock",
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: "empty CSV file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadProductsCSV(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductsJSON(t *testing.T) {
	products := seed.Products()

	var buf bytes.Buffer
	require.NoError(t, WriteProductsJSON(&buf, products))

	got, err := ReadProductsJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, products, got)

	_, err = ReadProductsJSON(strings.NewReader(`[{"price":1}]`))
	assert.ErrorContains(t, err, "item 1: name is required")

	_, err = ReadProductsJSON(strings.NewReader(`{`))
	assert.Error(t, err)

	buf.Reset()
	require.NoError(t, WriteProductsJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
