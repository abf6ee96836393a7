package structs

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims identify the customer a web request acts for.
type SessionClaims struct {
	CustomerID int64     `json:"sub"`
	Iat        time.Time `json:"iat"`
	Exp        time.Time `json:"exp"`
	Jti        uuid.UUID `json:"jti"`
}

type LoginRequest struct {
	CustomerID int64  `json:"customerId" validate:"required,min=1" label:"Customer Id"`
	ReturnURL  string `json:"returnUrl"`
}
