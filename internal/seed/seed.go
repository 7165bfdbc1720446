package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/coursewindow/internal/app/models"
	"github.com/yigit/coursewindow/internal/app/repositories"
)

// DefaultCourses returns the catalogue a fresh installation starts with
func DefaultCourses() []*models.Course {
	return []*models.Course{
		{
			Title:       "Morning Energizing Flow",
			Description: "Start your day with energy and intention through gentle flowing movements.",
			Content:     "This course covers morning yoga practices to energize your body and mind...",
			VideoID:     "dQw4w9WgXcQ",
			Duration:    60,
			Languages:   []string{"english", "hindi"},
			Batches: []models.Batch{
				{BatchName: "Batch 1", Time: "07:00", Days: []string{"Monday", "Wednesday", "Friday"}},
				{BatchName: "Batch 2", Time: "18:00", Days: []string{"Tuesday", "Thursday"}},
			},
			Status: models.CourseStatusActive,
		},
		{
			Title:       "प्राणायाम अभ्यास (Pranayama Practice)",
			Description: "श्वास नियंत्रण के माध्यम से अपनी जीवन शक्ति का विस्तार करें।",
			Content:     "इस पाठ्यक्रम में, हम विभिन्न प्राणायाम तकनीकों का अभ्यास करेंगे...",
			VideoID:     "inpok4MKVLM",
			Duration:    60,
			Languages:   []string{"hindi"},
			Batches: []models.Batch{
				{BatchName: "Morning Batch", Time: "07:00", Days: []string{"Monday", "Wednesday", "Friday"}},
				{BatchName: "Evening Batch", Time: "18:00", Days: []string{"Tuesday", "Thursday"}},
			},
			Status: models.CourseStatusActive,
		},
		{
			Title:       "ಧ್ಯಾನ ಅಭ್ಯಾಸ (Meditation Practice)",
			Description: "ಮಾರ್ಗದರ್ಶಿತ ಧ್ಯಾನದ ಮೂಲಕ ಮನಸ್ಸಿನ ಶಾಂತಿ ಮತ್ತು ಸ್ಪಷ್ಟತೆಯನ್ನು ಕಂಡುಕೊಳ್ಳಿ.",
			Content:     "ಈ ಕೋರ್ಸ್‌ನಲ್ಲಿ, ನಾವು ವಿವಿಧ ಧ್ಯಾನ ತಂತ್ರಗಳನ್ನು ಅಭ್ಯಾಸ ಮಾಡುತ್ತೇವೆ...",
			VideoID:     "86m4RC_ADEY",
			Duration:    60,
			Languages:   []string{"kannada", "english"},
			Batches: []models.Batch{
				{BatchName: "Beginner Batch", Time: "07:00", Days: []string{"Monday", "Wednesday", "Friday"}},
				{BatchName: "Advanced Batch", Time: "19:30", Days: []string{"Tuesday", "Thursday", "Saturday"}},
			},
			Status: models.CourseStatusActive,
		},
	}
}

// CreateDefaultData inserts the default courses when the store is empty.
// Individual failures are collected so one bad record does not stop the rest.
func CreateDefaultData(ctx context.Context, courseRepo repositories.CourseRepository, lgr zerolog.Logger) error {
	count, err := courseRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("courses", count).Msg("Course store not empty, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default courses...")
	var finalErr error
	for _, c := range DefaultCourses() {
		if err := courseRepo.Create(ctx, c); err != nil {
			lgr.Error().Err(err).Str("title", c.Title).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("courseID", c.ID).Str("title", c.Title).Msg("Default course created")
	}
	return finalErr
}
