package utils

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"tickertizer/src/config"
	"tickertizer/src/models"
	"tickertizer/src/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketHasSales = errors.New("ticket has transactions")
)

// GenerateEventToken returns the opaque identifier events are addressed by
// in public URLs, so numeric ids never leak.
func GenerateEventToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func ParseEventTime(value string) (time.Time, error) {
	return time.Parse(config.TIME_PARSE_FORMAT, value)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateAccessToken issues a short-lived HS256 token for the user.
func GenerateAccessToken(user *models.User) (string, error) {
	claims := types.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.FormattedID(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET_KEY")))
	if err != nil {
		log.Printf("Error signing token: %s\n", err.Error())
		return "", err
	}
	return signed, nil
}

// CreateNewEvent persists an event owned by userID with a fresh token.
func CreateNewEvent(db *gorm.DB, body *types.CreateEventRequestBody, userID uint) (*models.Event, error) {
	timeStart, err := ParseEventTime(body.TimeStart)
	if err != nil {
		return nil, err
	}
	timeEnd, err := ParseEventTime(body.TimeEnd)
	if err != nil {
		return nil, err
	}
	event := models.Event{
		Token:       GenerateEventToken(),
		Name:        body.Name,
		Venue:       body.Venue,
		Method:      body.Method,
		Link:        body.Link,
		TimeStart:   timeStart,
		TimeEnd:     timeEnd,
		Description: body.Description,
		OrgName:     body.OrgName,
		OrgMail:     body.OrgMail,
		Type:        body.Type,
		Banner:      body.Banner,
		Logo:        body.Logo,
		PrivacyType: body.PrivacyType,
		CreatedBy:   userID,
	}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("[event] Error creating event: %s\n", err.Error())
		return nil, err
	}
	return &event, nil
}

func GetEventByToken(db *gorm.DB, token string, preloads ...string) (*models.Event, error) {
	query := db.Where("token = ?", token)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// EventUpdateColumns maps the non-nil fields of a partial update onto their
// columns. Date fields are parsed here so a bad value rejects the whole
// update before anything is written.
func EventUpdateColumns(body *types.UpdateEventRequestBody) (map[string]any, error) {
	columns := map[string]any{}
	if body.Name != nil {
		columns["name"] = *body.Name
	}
	if body.Venue != nil {
		columns["venue"] = *body.Venue
	}
	if body.Method != nil {
		columns["method"] = *body.Method
	}
	if body.Link != nil {
		columns["link"] = *body.Link
	}
	if body.TimeStart != nil {
		timeStart, err := ParseEventTime(*body.TimeStart)
		if err != nil {
			return nil, err
		}
		columns["time_start"] = timeStart
	}
	if body.TimeEnd != nil {
		timeEnd, err := ParseEventTime(*body.TimeEnd)
		if err != nil {
			return nil, err
		}
		columns["time_end"] = timeEnd
	}
	if body.Description != nil {
		columns["description"] = *body.Description
	}
	if body.OrgName != nil {
		columns["org_name"] = *body.OrgName
	}
	if body.OrgMail != nil {
		columns["org_mail"] = *body.OrgMail
	}
	if body.Type != nil {
		columns["type"] = *body.Type
	}
	if body.Banner != nil {
		columns["banner"] = *body.Banner
	}
	if body.Logo != nil {
		columns["logo"] = *body.Logo
	}
	if body.PrivacyType != nil {
		columns["privacy_type"] = *body.PrivacyType
	}
	return columns, nil
}

func TicketUpdateColumns(body *types.UpdateTicketRequestBody) map[string]any {
	columns := map[string]any{}
	if body.Name != nil {
		columns["name"] = *body.Name
	}
	if body.Price != nil {
		columns["price"] = *body.Price
	}
	if body.Quantity != nil {
		columns["quantity"] = *body.Quantity
	}
	return columns
}

func FormQuestionUpdateColumns(body *types.UpdateFormQuestionRequestBody) map[string]any {
	columns := map[string]any{}
	if body.QuestionType != nil {
		columns["question_type"] = *body.QuestionType
	}
	if body.Question != nil {
		columns["question"] = *body.Question
	}
	if body.Options != nil {
		columns["options"] = *body.Options
	}
	return columns
}

// DeleteTicket refuses to remove a ticket that transactions reference;
// purchase history must stay resolvable.
func DeleteTicket(db *gorm.DB, ticketID uint) error {
	var count int64
	if err := db.
		Model(&models.Transaction{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).
		Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrTicketHasSales
	}
	res := db.Delete(&models.Ticket{}, ticketID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}
