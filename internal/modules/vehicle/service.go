package vehicle

import (
	"errors"

	"dealercrm/internal/domain"
	"dealercrm/internal/events"
	"dealercrm/internal/pkg/validator"
	"dealercrm/internal/store"
)

var (
	ErrValidation   = errors.New("required vehicle fields missing")
	ErrNotConfirmed = errors.New("delete not confirmed")
)

type SaveRequest struct {
	Make     string   `json:"make" binding:"required"`
	Model    string   `json:"model" binding:"required"`
	Year     int      `json:"year"`
	Color    string   `json:"color"`
	VIN      string   `json:"vin"`
	Stock    string   `json:"stock"`
	Price    float64  `json:"price"`
	Cost     *float64 `json:"cost"`
	Status   string   `json:"status"`
	Features string   `json:"features"`
}

type Service struct {
	store  *store.Store
	notify events.Publisher
}

func NewService(st *store.Store, notify events.Publisher) *Service {
	return &Service{store: st, notify: notify}
}

func (s *Service) List() ([]domain.Vehicle, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	return s.store.Vehicles, nil
}

// Available lists only vehicles still on the lot, for lead-interest pickers.
func (s *Service) Available() ([]domain.Vehicle, error) {
	if err := s.store.Reload(); err != nil {
		return nil, err
	}
	var out []domain.Vehicle
	for _, v := range s.store.Vehicles {
		if v.Status == domain.VehicleAvailable {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Service) apply(v *domain.Vehicle, req *SaveRequest) {
	v.Make = req.Make
	v.Model = req.Model
	v.Year = req.Year
	v.Color = req.Color
	v.VIN = req.VIN
	v.Stock = req.Stock
	v.Price = req.Price
	v.Cost = req.Cost
	if req.Status != "" {
		v.Status = domain.VehicleStatus(req.Status)
	} else {
		v.Status = domain.VehicleAvailable
	}
	v.Features = req.Features
}

func (s *Service) Create(req *SaveRequest) (*domain.Vehicle, error) {
	if req.Make == "" || req.Model == "" {
		events.Failure(s.notify, store.KeyVehicles, "Please fill in all required fields")
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	now := s.store.Now()
	v := domain.Vehicle{
		ID:        s.store.NextVehicleID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.apply(&v, req)
	if fields := validator.Validate(v); fields != nil {
		return nil, ErrValidation
	}

	s.store.Vehicles = append(s.store.Vehicles, v)
	if err := s.store.FlushVehicles(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyVehicles, "Vehicle saved successfully")
	return &v, nil
}

func (s *Service) Update(id int64, req *SaveRequest) (*domain.Vehicle, error) {
	if req.Make == "" || req.Model == "" {
		events.Failure(s.notify, store.KeyVehicles, "Please fill in all required fields")
		return nil, ErrValidation
	}
	if err := s.store.Reload(); err != nil {
		return nil, err
	}

	v := s.store.VehicleByID(id)
	if v == nil {
		return nil, nil
	}

	s.apply(v, req)
	v.UpdatedAt = s.store.Now()

	if err := s.store.FlushVehicles(); err != nil {
		return nil, err
	}

	events.Success(s.notify, store.KeyVehicles, "Vehicle saved successfully")
	return v, nil
}

func (s *Service) Delete(id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, ErrNotConfirmed
	}
	if err := s.store.Reload(); err != nil {
		return false, err
	}

	kept := s.store.Vehicles[:0]
	found := false
	for _, v := range s.store.Vehicles {
		if v.ID == id {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	if !found {
		return false, nil
	}
	s.store.Vehicles = kept

	if err := s.store.FlushVehicles(); err != nil {
		return false, err
	}

	events.Success(s.notify, store.KeyVehicles, "Vehicle deleted successfully")
	return true, nil
}
