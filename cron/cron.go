package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/evently/marketplace-app/workflow"
)

// StartCronJobs runs the booking auto-completion sweep. Confirmed
// bookings whose schedule window has elapsed are completed without staff
// action; the sweep shares the workflow's guarded transition, so racing a
// manual completion is safe.
func StartCronJobs(bookings *workflow.BookingWorkflow) {
	c := cron.New()
	// Every 10 minutes
	_, err := c.AddFunc("*/10 * * * *", func() {
		completed, err := bookings.CompleteElapsed()
		if err != nil {
			log.Printf("Booking completion sweep failed: %v", err)
			return
		}
		if completed > 0 {
			log.Printf("Auto-completed %d elapsed bookings", completed)
		}
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking completion")
}
