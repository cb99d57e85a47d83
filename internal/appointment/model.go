package appointment

import (
	"encoding/json"
	"fmt"

	"pawmart-web/internal/utils"
)

type Status string

const (
	StatusBooked    Status = "Booked"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type ServiceType string

const (
	ServiceGrooming ServiceType = "Grooming"
	ServiceTraining ServiceType = "Training"
	ServiceMedical  ServiceType = "Medical"
	ServiceBoarding ServiceType = "Boarding"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceGrooming, ServiceTraining, ServiceMedical, ServiceBoarding:
		return true
	}
	return false
}

// Details is the service-specific part of an appointment. Exactly one
// implementation exists per ServiceType.
type Details interface {
	ServiceType() ServiceType
}

type GroomingDetails struct {
	GroomingType string `json:"groomingType" validate:"required"`
}

func (GroomingDetails) ServiceType() ServiceType { return ServiceGrooming }

type TrainingDetails struct {
	TrainingType string `json:"trainingType" validate:"required"`
}

func (TrainingDetails) ServiceType() ServiceType { return ServiceTraining }

type MedicalDetails struct {
	MedicalType string `json:"medicalType" validate:"required"`
}

func (MedicalDetails) ServiceType() ServiceType { return ServiceMedical }

type BoardingDetails struct {
	BoardingPeriod      string `json:"boardingPeriod" validate:"required"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

func (BoardingDetails) ServiceType() ServiceType { return ServiceBoarding }

// DecodeDetails decodes raw into the Details variant selected by t.
// Empty or null input yields nil details without error.
func DecodeDetails(t ServiceType, raw json.RawMessage) (Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var (
		d   Details
		err error
	)
	switch t {
	case ServiceGrooming:
		var v GroomingDetails
		err = json.Unmarshal(raw, &v)
		d = v
	case ServiceTraining:
		var v TrainingDetails
		err = json.Unmarshal(raw, &v)
		d = v
	case ServiceMedical:
		var v MedicalDetails
		err = json.Unmarshal(raw, &v)
		d = v
	case ServiceBoarding:
		var v BoardingDetails
		err = json.Unmarshal(raw, &v)
		d = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, t)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s details: %w", t, err)
	}
	return d, nil
}

// TimeSlot is the reservation an appointment holds until it is cancelled.
type TimeSlot struct {
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	ServiceType ServiceType `json:"serviceType"`
}

type Appointment struct {
	ID          string
	UserID      string
	PetName     string
	OwnerName   string
	ServiceType ServiceType
	Date        string
	Time        string
	Status      Status
	Details     Details
}

type appointmentJSON struct {
	ID          string          `json:"_id"`
	UserID      string          `json:"userId,omitempty"`
	PetName     string          `json:"petName"`
	OwnerName   string          `json:"ownerName"`
	ServiceType ServiceType     `json:"serviceType"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Status      Status          `json:"status"`
	Details     json.RawMessage `json:"details,omitempty"`
}

func (a Appointment) MarshalJSON() ([]byte, error) {
	out := appointmentJSON{
		ID:          a.ID,
		UserID:      a.UserID,
		PetName:     a.PetName,
		OwnerName:   a.OwnerName,
		ServiceType: a.ServiceType,
		Date:        a.Date,
		Time:        a.Time,
		Status:      a.Status,
	}
	if a.Details != nil {
		raw, err := json.Marshal(a.Details)
		if err != nil {
			return nil, err
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

func (a *Appointment) UnmarshalJSON(data []byte) error {
	var in appointmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	details, err := DecodeDetails(in.ServiceType, in.Details)
	if err != nil {
		return err
	}

	*a = Appointment{
		ID:          in.ID,
		UserID:      in.UserID,
		PetName:     in.PetName,
		OwnerName:   in.OwnerName,
		ServiceType: in.ServiceType,
		Date:        in.Date,
		Time:        in.Time,
		Status:      in.Status,
		Details:     details,
	}
	return nil
}

func (a Appointment) Slot() TimeSlot {
	return TimeSlot{Date: a.Date, Time: a.Time, ServiceType: a.ServiceType}
}

func (a Appointment) DisplayPetName() string {
	return utils.OrUnknown(a.PetName)
}

func (a Appointment) DisplayOwnerName() string {
	return utils.OrUnknown(a.OwnerName)
}
