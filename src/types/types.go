package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type JSONBArray []any

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// TransactionStatus is a terminal state machine: incomplete is the only
// non-terminal state, success and failed are final.
type TransactionStatus string

const (
	TRANSACTION_INCOMPLETE TransactionStatus = "incomplete"
	TRANSACTION_SUCCESS    TransactionStatus = "success"
	TRANSACTION_FAILED     TransactionStatus = "failed"
)

type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type SignupRequestBody struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Password   string `json:"password" binding:"required"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateEventRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Venue       string `json:"venue,omitempty"`
	Method      string `json:"method" binding:"required"`
	Link        string `json:"link,omitempty"`
	TimeStart   string `json:"time_start" binding:"required,eventdate"`
	TimeEnd     string `json:"time_end" binding:"required,eventdate"`
	Description string `json:"description,omitempty"`
	OrgName     string `json:"org_name" binding:"required"`
	OrgMail     string `json:"org_mail" binding:"required,email"`
	Type        string `json:"type" binding:"required"`
	Banner      string `json:"banner,omitempty"`
	Logo        string `json:"logo,omitempty"`
	PrivacyType string `json:"privacy_type" binding:"required"`
}

// UpdateEventRequestBody is a partial update: only non-nil fields are
// written, as an explicit column map rather than conditional mutation.
type UpdateEventRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Venue       *string `json:"venue,omitempty"`
	Method      *string `json:"method,omitempty"`
	Link        *string `json:"link,omitempty"`
	TimeStart   *string `json:"time_start,omitempty" binding:"omitempty,eventdate"`
	TimeEnd     *string `json:"time_end,omitempty" binding:"omitempty,eventdate"`
	Description *string `json:"description,omitempty"`
	OrgName     *string `json:"org_name,omitempty"`
	OrgMail     *string `json:"org_mail,omitempty"`
	Type        *string `json:"type,omitempty"`
	Banner      *string `json:"banner,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	PrivacyType *string `json:"privacy_type,omitempty"`
}

type CreateTicketRequestBody struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity uint    `json:"quantity" binding:"required"`
}

type UpdateTicketRequestBody struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *uint    `json:"quantity,omitempty"`
}

type CreateFormQuestionRequestBody struct {
	QuestionType string     `json:"question_type" binding:"required"`
	Question     string     `json:"question" binding:"required"`
	Options      JSONBArray `json:"options,omitempty"`
}

type UpdateFormQuestionRequestBody struct {
	QuestionType *string     `json:"question_type,omitempty"`
	Question     *string     `json:"question,omitempty"`
	Options      *JSONBArray `json:"options,omitempty"`
}

type CreateFormAnswerRequestBody struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type UpdateFormAnswerRequestBody struct {
	Answer string `json:"answer" binding:"required"`
}

type CreateOrderRequestBody struct {
	TicketID uint   `json:"ticket_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone,omitempty"`
}

// PaymentCallbackRequestBody carries the gateway's signed notification,
// accepted either form-encoded or as JSON.
type PaymentCallbackRequestBody struct {
	RazorpayPaymentID string `form:"razorpay_payment_id" json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `form:"razorpay_order_id" json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `form:"razorpay_signature" json:"razorpay_signature" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type EventTokenURIParams struct {
	Token string `uri:"token" binding:"required"`
}

type TransactionURIParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// TransactionSummary is the public view served by GET /transaction/:id.
type TransactionSummary struct {
	EventName  string  `json:"event_name"`
	EventDate  string  `json:"event_date"`
	TicketName string  `json:"ticket_name"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"transaction_status"`
}
