package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
	"veluna/internal/usecase/derived"
	"veluna/internal/util"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	AdminUC   usecase.AdminUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the product catalog
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	activity  activityRecorder
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		activity:  activityRecorder{adminUC: params.AdminUC, logger: params.Logger},
		logger:    params.Logger,
	}
}

// ListProductsRequest holds the storefront listing query
type ListProductsRequest struct {
	Category string  `query:"category"`
	MinPrice float64 `query:"minPrice" validate:"gte=0"`
	MaxPrice float64 `query:"maxPrice" validate:"gte=0"`
	InStock  bool    `query:"inStock"`
	Search   string  `query:"search"`
	Sort     string  `query:"sort" validate:"omitempty,oneof=price-low price-high newest popular rating"`
	Page     int     `query:"page"`
	PerPage  int     `query:"perPage" validate:"gte=0,lte=100"`
}

// ListProducts returns one filtered, sorted page of products
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var req ListProductsRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.catalogUC.ListProducts(c.Request().Context(), usecase.ProductQuery{
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		InStock:  req.InStock,
		Search:   req.Search,
		Sort:     derived.SortKey(req.Sort),
		Page:     req.Page,
		PerPage:  req.PerPage,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// CreateProduct adds a product to the catalog
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var product entity.Product
	if err := c.Bind(&product); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	created, err := h.catalogUC.CreateProduct(c.Request().Context(), product)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "create_product", created.Name)

	return response.Success(c, http.StatusCreated, created)
}

// UpdateProduct replaces a product
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var product entity.Product
	if err := c.Bind(&product); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	updated, err := h.catalogUC.UpdateProduct(c.Request().Context(), id, product)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "update_product", updated.Name)

	return response.Success(c, http.StatusOK, updated)
}

// DeleteProduct removes a product
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "delete_product", strconv.FormatInt(id, 10))

	return response.Message(c, http.StatusOK, "Product deleted")
}

// ImportProducts appends products from an uploaded CSV or JSON file. The
// file comes from the "file" form field or the raw body; the format from
// the "format" query parameter or the file extension.
func (h *CatalogHandler) ImportProducts(c echo.Context) error {
	format := strings.ToLower(c.QueryParam("format"))

	var body io.Reader = c.Request().Body
	if fileHeader, err := c.FormFile("file"); err == nil {
		if format == "" {
			format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
		}

		h.logger.Debug("Importing products from upload",
			slog.String("file", fileHeader.Filename),
			slog.String("size", util.FormatBytes(fileHeader.Size)),
		)

		f, err := fileHeader.Open()
		if err != nil {
			return response.BadRequest(c, "INVALID_FILE", "Uploaded file cannot be read")
		}
		defer f.Close()
		body = f
	} else if format == "" && strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		format = usecase.FormatJSON
	}
	if format == "" {
		format = usecase.FormatCSV
	}

	imported, err := h.catalogUC.ImportProducts(c.Request().Context(), format, body)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "import_products", strconv.Itoa(len(imported))+" "+format)

	return response.Success(c, http.StatusCreated, imported)
}

// ExportProducts streams the catalog as a CSV or JSON attachment
func (h *CatalogHandler) ExportProducts(c echo.Context) error {
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = usecase.FormatCSV
	}

	var buf bytes.Buffer
	if err := h.catalogUC.ExportProducts(c.Request().Context(), format, &buf); err != nil {
		return response.HandleAppError(c, err)
	}

	contentType := "text/csv; charset=utf-8"
	if format == usecase.FormatJSON {
		contentType = echo.MIMEApplicationJSONCharsetUTF8
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.`+format+`"`)

	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// Inventory returns the stock summary
func (h *CatalogHandler) Inventory(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalogUC.Inventory(c.Request().Context()))
}
