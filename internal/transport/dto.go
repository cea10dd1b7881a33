package transport

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Link is the hypermedia pointer attached to every response.
type Link struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest carries no format rules: any credential that does not match
// an account is an auth failure, not a bad request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountView struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type SignupResponse struct {
	Message string      `json:"message"`
	Account AccountView `json:"account"`
	Request Link        `json:"request"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Request   Link      `json:"request"`
}

type AccountResponse struct {
	Account AccountView `json:"account"`
	Request Link        `json:"request"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Request Link   `json:"request"`
}

type CreateProductRequest struct {
	Name  string   `form:"name"  json:"name"  validate:"required,max=200"`
	Price *float64 `form:"price" json:"price" validate:"required,gte=0"`
}

// ImageUpload is a product image taken from a multipart request.
type ImageUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PatchOp sets one product property, e.g. {"propName":"price","value":12.5}.
type PatchOp struct {
	PropName string `json:"propName"`
	Value    any    `json:"value"`
}

type ProductView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	ProductImage string    `json:"productImage,omitempty"`
	Request      Link      `json:"request"`
}

type ProductList struct {
	Count    int           `json:"count"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Size     int           `json:"size"`
	Products []ProductView `json:"products"`
}

type CreateOrderRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"gte=0"`
}

type ProductSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

type OrderView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Product   *ProductSummary `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	Request   Link            `json:"request"`
}

type OrderList struct {
	Count  int         `json:"count"`
	Total  int64       `json:"total"`
	Page   int         `json:"page"`
	Size   int         `json:"size"`
	Orders []OrderView `json:"orders"`
}
