package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

const (
	maxLegacyLength = 20000
	maxLegacyYears  = 100
)

// TextCipher encrypts legacy text at rest. It protects a copied store, not
// the unlock date: the key is available to this process at all times.
type TextCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// LegacyRepository owns messages sealed for a future date. Whether a message
// is unlocked is decided at read time from the clock and never stored.
type LegacyRepository struct {
	list   *listRepository[models.LegacyMessage]
	cipher TextCipher
	now    Clock
}

// NewLegacyRepository builds the repository. cipher may be nil, in which
// case text is stored as plain JSON.
func NewLegacyRepository(kv storage.KeyValueStore, cipher TextCipher, now Clock) *LegacyRepository {
	if now == nil {
		now = systemClock
	}
	return &LegacyRepository{
		list:   newListRepository[models.LegacyMessage](kv, keyLegacy),
		cipher: cipher,
		now:    now,
	}
}

// EncryptsAtRest reports whether new messages are stored encrypted.
func (r *LegacyRepository) EncryptsAtRest() bool {
	return r.cipher != nil
}

// IsUnlocked is the unlock gate: now >= UnlockDate.
func IsUnlocked(msg models.LegacyMessage, now time.Time) bool {
	return !now.Before(msg.UnlockDate)
}

// Seal stores text until yearsFromNow calendar years from now.
func (r *LegacyRepository) Seal(ctx context.Context, text string, yearsFromNow int) (models.LegacyMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.LegacyMessage{}, invalid("text", "is required")
	}
	if len(text) > maxLegacyLength {
		return models.LegacyMessage{}, invalid("text", "is too long")
	}
	if yearsFromNow < 1 || yearsFromNow > maxLegacyYears {
		return models.LegacyMessage{}, invalid("years", "must be between 1 and 100")
	}

	stored, encrypted := text, false
	if r.cipher != nil {
		ct, err := r.cipher.Encrypt(text)
		if err != nil {
			return models.LegacyMessage{}, err
		}
		stored, encrypted = ct, true
	}

	now := r.now().UTC()
	return r.list.insert(ctx, func(id string) models.LegacyMessage {
		return models.LegacyMessage{
			ID:         id,
			Text:       stored,
			Encrypted:  encrypted,
			UnlockDate: now.AddDate(yearsFromNow, 0, 0),
			CreatedAt:  now,
		}
	})
}

// List returns stored records as persisted (ciphertext when encrypted).
func (r *LegacyRepository) List(ctx context.Context) ([]models.LegacyMessage, error) {
	return r.list.list(ctx)
}

// Views returns every message with its text withheld while locked.
func (r *LegacyRepository) Views(ctx context.Context) ([]models.LegacyMessageView, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	views := make([]models.LegacyMessageView, 0, len(items))
	for _, m := range items {
		views = append(views, r.view(m, now))
	}
	return views, nil
}

// View returns one message through the unlock gate.
func (r *LegacyRepository) View(ctx context.Context, id string) (models.LegacyMessageView, error) {
	m, err := r.list.find(ctx, id)
	if err != nil {
		return models.LegacyMessageView{}, err
	}
	return r.view(m, r.now()), nil
}

func (r *LegacyRepository) view(m models.LegacyMessage, now time.Time) models.LegacyMessageView {
	v := models.LegacyMessageView{
		ID:         m.ID,
		Unlocked:   IsUnlocked(m, now),
		UnlockDate: m.UnlockDate,
		CreatedAt:  m.CreatedAt,
	}
	if !v.Unlocked {
		return v
	}
	if !m.Encrypted {
		v.Text = m.Text
		return v
	}
	if r.cipher == nil {
		log.Printf("[Legacy] message %s is encrypted but no key is configured", m.ID)
		return v
	}
	text, err := r.cipher.Decrypt(m.Text)
	if err != nil {
		log.Printf("[Legacy] failed to decrypt message %s: %v", m.ID, err)
		return v
	}
	v.Text = text
	return v
}

func (r *LegacyRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.list.remove(ctx, id)
	return err
}

func (r *LegacyRepository) Counts(ctx context.Context) (models.LegacyCounts, error) {
	items, err := r.List(ctx)
	if err != nil {
		return models.LegacyCounts{}, err
	}
	now := r.now()
	counts := models.LegacyCounts{Total: len(items)}
	for _, m := range items {
		if IsUnlocked(m, now) {
			counts.Unlocked++
		} else {
			counts.Locked++
		}
	}
	return counts, nil
}
