package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/google/uuid"
)

// MaxAudioBytes bounds a single voice recording.
const MaxAudioBytes = 20 << 20

// VoiceDiaryRepository owns diary entries; the recordings themselves live in
// the voice blob store and are referenced by AudioRef.
type VoiceDiaryRepository struct {
	list  *listRepository[models.VoiceDiaryEntry]
	audio storage.BlobStore
	now   Clock
}

func NewVoiceDiaryRepository(kv storage.KeyValueStore, audio storage.BlobStore, now Clock) *VoiceDiaryRepository {
	if now == nil {
		now = systemClock
	}
	return &VoiceDiaryRepository{
		list:  newListRepository[models.VoiceDiaryEntry](kv, keyVoiceDiary),
		audio: audio,
		now:   now,
	}
}

func (r *VoiceDiaryRepository) List(ctx context.Context) ([]models.VoiceDiaryEntry, error) {
	return r.list.list(ctx)
}

func (r *VoiceDiaryRepository) Find(ctx context.Context, id string) (models.VoiceDiaryEntry, error) {
	return r.list.find(ctx, id)
}

// Create records an entry for audio that is already stored under audioRef.
func (r *VoiceDiaryRepository) Create(ctx context.Context, audioRef, title string, durationSeconds int) (models.VoiceDiaryEntry, error) {
	audioRef = strings.TrimSpace(audioRef)
	if audioRef == "" {
		return models.VoiceDiaryEntry{}, invalid("audio_ref", "is required")
	}
	if durationSeconds < 0 {
		return models.VoiceDiaryEntry{}, invalid("duration_seconds", "must not be negative")
	}
	now := r.now().UTC()
	return r.list.insert(ctx, func(id string) models.VoiceDiaryEntry {
		return models.VoiceDiaryEntry{
			ID:              id,
			AudioRef:        audioRef,
			Title:           strings.TrimSpace(title),
			DurationSeconds: durationSeconds,
			CreatedAt:       now,
		}
	})
}

// Record stores the audio and then the entry. If the entry cannot be written
// the blob is removed again so no orphan is counted.
func (r *VoiceDiaryRepository) Record(ctx context.Context, contentType string, audio []byte, title string, durationSeconds int) (models.VoiceDiaryEntry, error) {
	if r.audio == nil {
		return models.VoiceDiaryEntry{}, unavailable("write", "voice audio", errors.New("no blob store configured"))
	}
	if len(audio) == 0 {
		return models.VoiceDiaryEntry{}, invalid("audio", "is required")
	}
	if len(audio) > MaxAudioBytes {
		return models.VoiceDiaryEntry{}, invalid("audio", "is too large")
	}
	if !strings.HasPrefix(contentType, "audio/") && !strings.HasPrefix(contentType, "video/webm") {
		return models.VoiceDiaryEntry{}, invalid("audio", "must be an audio recording")
	}

	ref := uuid.NewString()
	if _, err := r.audio.Put(ctx, ref, contentType, audio); err != nil {
		return models.VoiceDiaryEntry{}, unavailable("write", "voice audio", err)
	}
	entry, err := r.Create(ctx, ref, title, durationSeconds)
	if err != nil {
		if delErr := r.audio.Delete(ctx, ref); delErr != nil {
			log.Printf("[VoiceDiary] failed to remove orphaned audio %s: %v", ref, delErr)
		}
		return models.VoiceDiaryEntry{}, err
	}
	return entry, nil
}

// OpenAudio returns the recording for an entry.
func (r *VoiceDiaryRepository) OpenAudio(ctx context.Context, id string) (storage.BlobRecord, []byte, error) {
	entry, err := r.Find(ctx, id)
	if err != nil {
		return storage.BlobRecord{}, nil, err
	}
	if r.audio == nil {
		return storage.BlobRecord{}, nil, unavailable("read", "voice audio", errors.New("no blob store configured"))
	}
	rec, data, err := r.audio.Open(ctx, entry.AudioRef)
	if errors.Is(err, storage.ErrBlobNotFound) {
		return storage.BlobRecord{}, nil, ErrNotFound
	}
	if err != nil {
		return storage.BlobRecord{}, nil, unavailable("read", "voice audio", err)
	}
	return rec, data, nil
}

// Delete removes the entry, then its audio best-effort.
func (r *VoiceDiaryRepository) Delete(ctx context.Context, id string) error {
	removed, ok, err := r.list.remove(ctx, id)
	if err != nil || !ok || r.audio == nil {
		return err
	}
	if err := r.audio.Delete(ctx, removed.AudioRef); err != nil {
		log.Printf("[VoiceDiary] failed to remove audio %s: %v", removed.AudioRef, err)
	}
	return nil
}

func (r *VoiceDiaryRepository) Counts(ctx context.Context) (models.VoiceDiaryCounts, error) {
	items, err := r.List(ctx)
	if err != nil {
		return models.VoiceDiaryCounts{}, err
	}
	return models.VoiceDiaryCounts{Total: len(items)}, nil
}
