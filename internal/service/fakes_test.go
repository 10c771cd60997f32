package service

import (
	"context"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/contract"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"
	"medicab-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. They answer the lookups the
// services actually perform; anything unused returns zero values.

type fakeSubscriptionRepo struct {
	plans       []*entity.Plan
	sub         *entity.Subscription
	updateCalls int
	planReads   int
}

func (r *fakeSubscriptionRepo) CreatePlan(_ context.Context, plan *entity.Plan) error {
	r.plans = append(r.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) FindOnePlan(_ context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	r.planReads++
	for _, plan := range r.plans {
		if planMatches(plan, specs) {
			return plan, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(_ context.Context, _ ...specification.Specification) ([]*entity.Plan, error) {
	r.planReads++
	return r.plans, nil
}

func (r *fakeSubscriptionRepo) FindPlanByStripePriceId(_ context.Context, priceId string) (*entity.Plan, error) {
	for _, plan := range r.plans {
		if plan.StripePriceId != nil && *plan.StripePriceId == priceId {
			return plan, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(_ context.Context, sub *entity.Subscription) error {
	r.sub = sub
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(_ context.Context, sub *entity.Subscription) error {
	r.sub = sub
	r.updateCalls++
	return nil
}

func (r *fakeSubscriptionRepo) FindByCabinet(_ context.Context, cabinetId uuid.UUID) (*entity.Subscription, error) {
	if r.sub != nil && r.sub.CabinetId == cabinetId {
		return r.sub, nil
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindByStripeSubscriptionId(_ context.Context, stripeSubId string) (*entity.Subscription, error) {
	if r.sub != nil && r.sub.StripeSubscriptionId != nil && *r.sub.StripeSubscriptionId == stripeSubId {
		return r.sub, nil
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) CountByStatus(_ context.Context, status entity.SubscriptionStatus) (int, error) {
	if r.sub != nil && r.sub.Status == status {
		return 1, nil
	}
	return 0, nil
}

// planMatches interprets the two specification shapes the services use for
// plan lookups: ByID and Filter("is_trial"/"slug", ...).
func planMatches(plan *entity.Plan, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if plan.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "is_trial":
				if plan.IsTrial != s.Value.(bool) {
					return false
				}
			case "slug":
				if plan.Slug != s.Value.(string) {
					return false
				}
			}
		}
	}
	return true
}

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.users {
		if userMatches(user, specs) {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.User, error) {
	return r.users, nil
}

func userMatches(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		case specification.CabinetOwnedBy:
			if user.CabinetId != s.CabinetID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "role" && string(user.Role) != s.Value.(string) {
				return false
			}
		}
	}
	return true
}

type fakeCabinetRepo struct {
	cabinets []*entity.Cabinet
}

func (r *fakeCabinetRepo) Create(_ context.Context, cabinet *entity.Cabinet) error {
	r.cabinets = append(r.cabinets, cabinet)
	return nil
}

func (r *fakeCabinetRepo) Update(_ context.Context, _ *entity.Cabinet) error { return nil }

func (r *fakeCabinetRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Cabinet, error) {
	if len(r.cabinets) > 0 {
		return r.cabinets[0], nil
	}
	return nil, nil
}

func (r *fakeCabinetRepo) FindByStripeCustomerId(_ context.Context, customerId string) (*entity.Cabinet, error) {
	for _, cabinet := range r.cabinets {
		if cabinet.StripeCustomerId != nil && *cabinet.StripeCustomerId == customerId {
			return cabinet, nil
		}
	}
	return nil, nil
}

type fakePatientRepo struct {
	patients []*entity.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	r.patients = append(r.patients, patient)
	return nil
}

func (r *fakePatientRepo) Update(_ context.Context, _ *entity.Patient) error { return nil }

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range r.patients {
		if p.Id == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePatientRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Patient, error) {
	for _, patient := range r.patients {
		matches := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				if patient.Id != s.ID {
					matches = false
				}
			case specification.CabinetOwnedBy:
				if patient.CabinetId != s.CabinetID {
					matches = false
				}
			}
		}
		if matches {
			return patient, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Patient, error) {
	return r.patients, nil
}

func (r *fakePatientRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeTreatmentRepo struct {
	treatments []*entity.Treatment
}

func (r *fakeTreatmentRepo) Create(_ context.Context, treatment *entity.Treatment) error {
	r.treatments = append(r.treatments, treatment)
	return nil
}

func (r *fakeTreatmentRepo) Update(_ context.Context, treatment *entity.Treatment) error {
	for i, t := range r.treatments {
		if t.Id == treatment.Id {
			r.treatments[i] = treatment
		}
	}
	return nil
}

func (r *fakeTreatmentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Treatment, error) {
	for _, treatment := range r.treatments {
		matches := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				if treatment.Id != s.ID {
					matches = false
				}
			case specification.CabinetOwnedBy:
				if treatment.CabinetId != s.CabinetID {
					matches = false
				}
			case specification.PatientOwnedBy:
				if treatment.PatientId != s.PatientID {
					matches = false
				}
			}
		}
		if matches {
			return treatment, nil
		}
	}
	return nil, nil
}

func (r *fakeTreatmentRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Treatment, error) {
	return r.treatments, nil
}

// fakeUnitOfWork hands back the shared fakes. Begin/Commit/Rollback are
// no-ops; transactional behavior is covered by the integration tests.
type fakeUnitOfWork struct {
	subscriptions *fakeSubscriptionRepo
	users         *fakeUserRepo
	cabinets      *fakeCabinetRepo
	patients      *fakePatientRepo
	treatments    *fakeTreatmentRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) CabinetRepository() contract.CabinetRepository { return u.cabinets }
func (u *fakeUnitOfWork) UserRepository() contract.UserRepository       { return u.users }
func (u *fakeUnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return u.subscriptions
}
func (u *fakeUnitOfWork) PatientRepository() contract.PatientRepository { return u.patients }
func (u *fakeUnitOfWork) AppointmentRepository() contract.AppointmentRepository {
	return nil
}
func (u *fakeUnitOfWork) TreatmentRepository() contract.TreatmentRepository { return u.treatments }
func (u *fakeUnitOfWork) MedicalRecordRepository() contract.MedicalRecordRepository {
	return nil
}
func (u *fakeUnitOfWork) TariffRepository() contract.TariffRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeUowFactory() (*fakeUowFactory, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		subscriptions: &fakeSubscriptionRepo{},
		users:         &fakeUserRepo{},
		cabinets:      &fakeCabinetRepo{},
		patients:      &fakePatientRepo{},
		treatments:    &fakeTreatmentRepo{},
	}
	return &fakeUowFactory{uow: uow}, uow
}

// fakePublisher records every published event for assertions.
type fakePublisher struct {
	published []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	types := make([]string, 0, len(p.published))
	for _, e := range p.published {
		types = append(types, e.EventType())
	}
	return types
}
