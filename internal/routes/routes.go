package routes

import (
	"github.com/AnshRaj112/keepsake-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r chi.Router, api *handlers.API) {
	r.Get("/health", api.Health)

	// Dashboard
	r.Get("/api/stats", api.GetStats)
	r.Get("/api/recap", api.GetRecap)
	r.Get("/api/storage", api.GetStorage)

	// Time capsules (sealed on creation, delete only)
	r.Get("/api/capsules", api.GetCapsules)
	r.Post("/api/capsules", api.CreateCapsule)
	r.Delete("/api/capsules/{id}", api.DeleteCapsule)

	// Goals
	r.Get("/api/goals", api.GetGoals)
	r.Post("/api/goals", api.CreateGoal)
	r.Patch("/api/goals/{id}", api.UpdateGoal)
	r.Post("/api/goals/{id}/toggle", api.ToggleGoal)
	r.Delete("/api/goals/{id}", api.DeleteGoal)

	// Voice diary
	r.Get("/api/voice-diary", api.GetVoiceEntries)
	r.Post("/api/voice-diary", api.RecordVoiceEntry)
	r.Get("/api/voice-diary/{id}", api.GetVoiceEntry)
	r.Get("/api/voice-diary/{id}/audio", api.GetVoiceAudio)
	r.Delete("/api/voice-diary/{id}", api.DeleteVoiceEntry)

	// Journey timeline
	r.Get("/api/journey", api.GetJourney)
	r.Post("/api/journey", api.CreateMilestone)
	r.Patch("/api/journey/{id}", api.UpdateMilestone)
	r.Delete("/api/journey/{id}", api.DeleteMilestone)

	// Legacy messages
	r.Get("/api/legacy", api.GetLegacyMessages)
	r.Post("/api/legacy", api.SealLegacyMessage)
	r.Get("/api/legacy/{id}", api.GetLegacyMessage)
	r.Delete("/api/legacy/{id}", api.DeleteLegacyMessage)

	// Daily check-ins
	r.Get("/api/daily", api.GetDailyAnswers)
	r.Post("/api/daily", api.RecordDailyAnswer)
	r.Get("/api/daily/{date}", api.GetDailyAnswer)
	r.Delete("/api/daily/{date}", api.DeleteDailyAnswer)

	// Photos
	r.Get("/api/photos", api.GetPhotos)
	r.Post("/api/photos", api.UploadPhoto)
	r.Get("/api/photos/{id}", api.GetPhoto)
	r.Delete("/api/photos/{id}", api.DeletePhoto)

	// Live dashboard updates
	r.Get("/ws/events", api.StreamEvents)
}
