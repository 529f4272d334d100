package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dealercrm/internal/config"
	"dealercrm/internal/database"
	"dealercrm/internal/domain"
	"dealercrm/internal/store"

	"github.com/joho/godotenv"
)

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt failed:", err)
	}
	return string(h)
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	adapter, err := store.NewGormAdapter(db)
	if err != nil {
		log.Fatal(err)
	}
	st := store.New(adapter)

	now := time.Now()

	// ================== USERS ==================
	log.Println("Creating users...")
	st.Users = []domain.User{
		{
			ID:           1,
			Name:         "Admin User",
			Email:        "admin@dealership.com",
			Role:         domain.RoleSalesManager,
			PasswordHash: hash("admin123"),
			LastActivity: now,
		},
		{
			ID:           2,
			Name:         "Walter White",
			Email:        "walter@dealership.com",
			Role:         domain.RoleSalesRep,
			PasswordHash: hash("rep123"),
			LastActivity: now,
		},
		{
			ID:           3,
			Name:         "Jesse Pinkman",
			Email:        "jesse@dealership.com",
			Role:         domain.RoleSalesRep,
			PasswordHash: hash("rep123"),
			LastActivity: now,
		},
	}
	if err := st.FlushUsers(); err != nil {
		log.Fatal(err)
	}
	if err := st.SetCurrentUser(1); err != nil {
		log.Fatal(err)
	}
	log.Println("Manager created: admin@dealership.com / admin123")

	// ================== VEHICLES ==================
	log.Println("Creating vehicles...")
	st.Vehicles = []domain.Vehicle{
		{
			ID: 1, Make: "Toyota", Model: "Land Cruiser Prado", Year: 2022,
			Color: "White", Stock: "STK-001", Price: 8500000,
			Cost: ptrF(7200000), Status: domain.VehicleAvailable,
			Features: "Leather seats, sunroof, 4WD", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 2, Make: "Subaru", Model: "Forester", Year: 2021,
			Color: "Blue", Stock: "STK-002", Price: 4200000,
			Cost: ptrF(3600000), Status: domain.VehicleAvailable,
			Features: "AWD, eyesight package", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 3, Make: "Mazda", Model: "CX-5", Year: 2023,
			Color: "Red", Stock: "STK-003", Price: 5100000,
			Status: domain.VehicleReserved, CreatedAt: now, UpdatedAt: now,
		},
	}
	if err := st.FlushVehicles(); err != nil {
		log.Fatal(err)
	}

	// ================== LEADS ==================
	log.Println("Creating leads...")
	closed := now.AddDate(0, 0, -3)
	st.Leads = []domain.Lead{
		{
			ID: 1, Name: "John Kamau", Email: "john.kamau@gmail.com",
			Phone: "+254 712 345 678", Source: domain.SourceWebsite,
			Status: domain.StatusNew, AssignedTo: ptrI(2),
			VehicleID: ptrI(1), Value: ptrF(8500000), TradeIn: "no",
			Timeline: "1-3 months", CreatedAt: now.AddDate(0, 0, -5), UpdatedAt: now,
		},
		{
			ID: 2, Name: "Mary Wanjiku", Email: "mary.w@yahoo.com",
			Phone: "+254 722 111 222", Source: domain.SourceReferral,
			Status: domain.StatusNegotiation, AssignedTo: ptrI(2),
			VehicleInterest: "Subaru Forester", Value: ptrF(4200000),
			TradeIn: "yes", CreatedAt: now.AddDate(0, 0, -20), UpdatedAt: now,
		},
		{
			ID: 3, Name: "Peter Omondi", Email: "p.omondi@outlook.com",
			Phone: "+254 733 444 555", Source: domain.SourceWalkIn,
			Status: domain.StatusWon, AssignedTo: ptrI(3),
			VehicleID: ptrI(3), Value: ptrF(5100000), CloseDate: &closed,
			TradeIn: "no", CreatedAt: now.AddDate(0, 0, -40), UpdatedAt: closed,
		},
	}
	if err := st.FlushLeads(); err != nil {
		log.Fatal(err)
	}

	// ================== TASKS ==================
	log.Println("Creating tasks...")
	st.Tasks = []domain.Task{
		{
			ID: 1, Title: "Call John about financing options", LeadID: 1,
			AssignedTo: ptrI(2), DueDate: now.AddDate(0, 0, 1),
			Priority: domain.PriorityHigh, Status: domain.TaskPending,
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: 2, Title: "Prepare trade-in valuation for Mary", LeadID: 2,
			AssignedTo: ptrI(2), DueDate: now.AddDate(0, 0, -2),
			Priority: domain.PriorityMedium, Status: domain.TaskPending,
			CreatedAt: now.AddDate(0, 0, -4), UpdatedAt: now,
		},
	}
	if err := st.FlushTasks(); err != nil {
		log.Fatal(err)
	}

	// ================== COMMUNICATIONS ==================
	log.Println("Creating communications...")
	st.Communications = []domain.Communication{
		{
			ID: 1, LeadID: 2, Type: domain.CommCall,
			Outcome:   domain.OutcomePositive,
			Notes:     "Discussed deposit and financing schedule",
			CreatedAt: now.AddDate(0, 0, -6),
		},
	}
	if err := st.FlushCommunications(); err != nil {
		log.Fatal(err)
	}

	// ================== TEST DRIVES ==================
	log.Println("Creating test drives...")
	st.TestDrives = []domain.TestDrive{
		{
			ID: 1, LeadID: 1, Vehicle: "Toyota Land Cruiser Prado",
			Datetime: now.AddDate(0, 0, 2), SalesRepID: 2,
			Status: domain.DriveScheduled, CreatedAt: now, UpdatedAt: now,
		},
	}
	if err := st.FlushTestDrives(); err != nil {
		log.Fatal(err)
	}

	// ================== TARGETS ==================
	log.Println("Creating targets...")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	st.Targets = []domain.Target{
		{
			ID: 1, SalesRepID: 2, PeriodType: domain.PeriodMonthly,
			Period: domain.PeriodKey(monthStart, domain.PeriodMonthly),
			Amount: 10000000, StartDate: monthStart, CreatedAt: now,
		},
		{
			ID: 2, SalesRepID: 3, PeriodType: domain.PeriodMonthly,
			Period: domain.PeriodKey(monthStart, domain.PeriodMonthly),
			Amount: 8000000, StartDate: monthStart, CreatedAt: now,
		},
	}
	if err := st.FlushTargets(); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
}
