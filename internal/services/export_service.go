package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/finbook/finbook/internal/repository"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidExport    = errors.New("invalid export data")
)

type LedgerExport struct {
	UserID     uint               `json:"user_id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Balance    int64              `json:"balance"`
	Events     []LedgerExportItem `json:"events"`
	ExportedAt time.Time          `json:"exported_at"`
	Signature  string             `json:"signature"`
}

type LedgerExportItem struct {
	ID        uint      `json:"id"`
	Value     int64     `json:"value"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportService produces a signed statement of a user's ledger. The
// HMAC covers the export with its signature field blanked, so a holder
// of the signing key can detect tampering with an exported statement.
type ExportService struct {
	userRepo   *repository.UserRepository
	eventRepo  *repository.EventRepository
	signingKey string
}

func NewExportService(userRepo *repository.UserRepository, eventRepo *repository.EventRepository, signingKey string) *ExportService {
	return &ExportService{
		userRepo:   userRepo,
		eventRepo:  eventRepo,
		signingKey: signingKey,
	}
}

func (s *ExportService) Export(userID uint) (*LedgerExport, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidExport
	}

	events, err := s.eventRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	items := make([]LedgerExportItem, len(events))
	for i, event := range events {
		items[i] = LedgerExportItem{
			ID:        event.ID,
			Value:     event.Value,
			Type:      event.Type,
			CreatedAt: event.CreatedAt,
		}
	}

	export := &LedgerExport{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Balance:    Sum(events),
		Events:     items,
		ExportedAt: time.Now().UTC(),
	}

	signature, err := s.sign(export)
	if err != nil {
		return nil, err
	}
	export.Signature = signature

	return export, nil
}

// VerifyExport recomputes the HMAC over the export and compares it with
// the embedded signature.
func (s *ExportService) VerifyExport(export *LedgerExport) error {
	signature := export.Signature
	export.Signature = ""
	defer func() { export.Signature = signature }()

	expected, err := s.sign(export)
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (s *ExportService) sign(export *LedgerExport) (string, error) {
	payload, err := json.Marshal(export)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, []byte(s.signingKey))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil)), nil
}
