package boot

import (
	"log"
	"time"

	"tickertizer/src/db"
	"tickertizer/src/lib"
	"tickertizer/src/models"
	"tickertizer/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Ticket{},
		&models.Transaction{},
		&models.Registration{},
		&models.FormQuestion{},
		&models.FormAnswer{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the background sweep that fails abandoned checkouts.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	jobID, err := lib.CreateCronJob(func() {
		utils.ExpireStaleTransactions(db.GetDb(), 24*time.Hour)
	}, time.Hour)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s\n", *jobID)
	sched.Start()
}
