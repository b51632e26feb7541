package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/notify"
)

// StartDailyScheduler runs the daily maintenance sweeps. Referral expiry
// fires shortly after midnight so referrals expire on the first day they are
// no longer usable; reminders go out in the morning for the next day's
// appointments.
func StartDailyScheduler(db *gorm.DB, notifier *notify.Recorder) *cron.Cron {
	c := cron.New()

	// Runs every day at 00:05
	c.AddFunc("5 0 * * *", func() {
		log.Println("Running daily referral expiry sweep...")
		if err := ExpireReferrals(db, notifier, time.Now()); err != nil {
			log.Println("Referral expiry sweep failed:", err)
		}
	})

	// Runs every day at 08:00
	c.AddFunc("0 8 * * *", func() {
		log.Println("Running appointment reminder sweep...")
		if err := SendAppointmentReminders(db, notifier, time.Now()); err != nil {
			log.Println("Appointment reminder sweep failed:", err)
		}
	})

	c.Start()
	return c
}

// ExpireReferrals marks every pending referral past its validity period as
// expired and warns the affected patient. It is idempotent: already-expired
// and used referrals are never touched.
func ExpireReferrals(db *gorm.DB, notifier *notify.Recorder, now time.Time) error {
	var pending []models.Referral
	err := db.Preload("Patient").Preload("Specialty").
		Where("status = ?", models.ReferralPending).
		Find(&pending).Error
	if err != nil {
		return err
	}

	for i := range pending {
		referral := &pending[i]
		if referral.UsableOn(now) {
			continue
		}
		if err := db.Model(referral).Update("status", models.ReferralExpired).Error; err != nil {
			log.Printf("Failed to expire referral %s: %v", referral.ID, err)
			continue
		}
		notifier.Notify(referral.Patient.UserID,
			fmt.Sprintf("Your referral to %s expired on %s without being used.",
				referral.Specialty.Name, referral.ExpiresOn().Format("02/01/2006")),
			models.NotifyWarning, false, "referral", referral.ID)
	}
	return nil
}

// SendAppointmentReminders reminds each patient of tomorrow's requested and
// confirmed appointments. It is idempotent: an appointment that already has a
// reminder in the inbox is skipped on later runs.
func SendAppointmentReminders(db *gorm.DB, notifier *notify.Recorder, now time.Time) error {
	y, m, d := now.Date()
	tomorrow := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := db.Preload("Patient.User").Preload("Physician.User").
		Where("date = ?", tomorrow).
		Where("status IN ?", []models.AppointmentStatus{
			models.StatusRequested, models.StatusConfirmed,
		}).
		Find(&appointments).Error
	if err != nil {
		return err
	}

	for i := range appointments {
		appt := &appointments[i]
		var sent int64
		err := db.Model(&models.Notification{}).
			Where("related_kind = ? AND related_id = ? AND kind = ?",
				"appointment", appt.ID, models.NotifyReminder).
			Count(&sent).Error
		if err != nil {
			return err
		}
		if sent > 0 {
			continue
		}
		notifier.Notify(appt.Patient.UserID,
			fmt.Sprintf("Reminder: you have an appointment with Dr. %s tomorrow at %s.",
				appt.Physician.User.FullName(), appt.StartTime),
			models.NotifyReminder, true, "appointment", appt.ID)
	}
	return nil
}
