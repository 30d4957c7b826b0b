package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"event-rental/internal/graph"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/types"
)

type CustomerServiceSuite struct {
	suite.Suite
	f   *fixture
	svc CustomerServiceInterface
	ctx context.Context
}

func (s *CustomerServiceSuite) SetupTest() {
	s.f = newFixture()
	s.svc = s.f.customerService()
	s.ctx = context.Background()
}

func TestCustomerServiceSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) create() uint64 {
	c, err := s.svc.CreateCustomer(s.ctx, []byte(`{
		"name": "Acme Events", "phone": "5551234567", "email": "ops@acme.test", "company": "Acme"
	}`))
	s.Require().NoError(err)
	return c.ID
}

func (s *CustomerServiceSuite) TestCreateAndFind() {
	id := s.create()

	got, err := s.svc.FindCustomer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Acme Events", got.Name)
	s.Equal("5551234567", got.Phone.String)
	s.Equal("ops@acme.test", got.Email.String)
}

func (s *CustomerServiceSuite) TestCreateOptionalFieldsNull() {
	c, err := s.svc.CreateCustomer(s.ctx, []byte(`{"name": "Walk-in", "phone": null}`))
	s.Require().NoError(err)
	s.False(c.Phone.Valid)
	s.False(c.Email.Valid)
	s.False(c.Company.Valid)
}

func (s *CustomerServiceSuite) TestCreateRejectsBadEmailAndLongPhone() {
	_, err := s.svc.CreateCustomer(s.ctx, []byte(`{"name": "X", "email": "not-an-email", "phone": "12345678901"}`))

	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "email")
	s.Contains(verr.Fields, "phone")
	s.Equal(0, len(s.f.store.customers))
}

func (s *CustomerServiceSuite) TestPartialUpdateTouchesOnlySentFields() {
	id := s.create()

	got, err := s.svc.UpdateCustomer(s.ctx, id, []byte(`{"phone": "5559990000"}`), graph.PartialUpdate)
	s.Require().NoError(err)

	s.Equal("5559990000", got.Phone.String)
	s.Equal("Acme Events", got.Name)
	s.Equal("ops@acme.test", got.Email.String)
	s.Equal("Acme", got.Company.String)
}

func (s *CustomerServiceSuite) TestPartialUpdateCanClearNullable() {
	id := s.create()

	got, err := s.svc.UpdateCustomer(s.ctx, id, []byte(`{"company": null}`), graph.PartialUpdate)
	s.Require().NoError(err)
	s.False(got.Company.Valid)
	s.Equal("5551234567", got.Phone.String)
}

func (s *CustomerServiceSuite) TestFullUpdateMissingNameChangesNothing() {
	id := s.create()
	runs := s.f.tx.runs

	_, err := s.svc.UpdateCustomer(s.ctx, id, []byte(`{"phone": "5550000000"}`), graph.FullUpdate)

	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "name")
	s.Equal(runs, s.f.tx.runs)

	got, err := s.svc.FindCustomer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("5551234567", got.Phone.String)
}

func (s *CustomerServiceSuite) TestUnknownFieldRejected() {
	id := s.create()
	_, err := s.svc.UpdateCustomer(s.ctx, id, []byte(`{"nickname": "A"}`), graph.PartialUpdate)

	var verr *apperrors.ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Contains(verr.Fields, "nickname")
}

func (s *CustomerServiceSuite) TestUpdateMissingIsNotFound() {
	_, err := s.svc.UpdateCustomer(s.ctx, 404, []byte(`{"name": "Ghost"}`), graph.PartialUpdate)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CustomerServiceSuite) TestDeleteReferencedCustomerIsConflict() {
	id := s.create()
	_, err := s.f.eventService().CreateEvent(s.ctx, []byte(`{
		"name": "Gala", "customer": {"id": `+uintJSON(id)+`},
		"load_in_date": "2026-05-01T08:00:00Z", "load_out_date": "2026-05-02T23:00:00Z",
		"start_date": "2026-05-01T18:00:00Z", "end_date": "2026-05-01T23:00:00Z",
		"comment": "n/a"
	}`))
	s.Require().NoError(err)

	s.ErrorIs(s.svc.DeleteCustomer(s.ctx, id), apperrors.ErrConflict)
	_, err = s.svc.FindCustomer(s.ctx, id)
	s.NoError(err)
}

func (s *CustomerServiceSuite) TestListIsPaginated() {
	for i := 0; i < 5; i++ {
		s.create()
	}
	page, err := s.svc.GetCustomers(s.ctx, types.Filter{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Equal(uint64(5), page.Total)
	s.Len(page.List, 2)
}

func TestVenueService_CRUD(t *testing.T) {
	f := newFixture()
	svc := f.venueService()
	ctx := context.Background()

	v, err := svc.CreateVenue(ctx, []byte(`{"name": "Hall A", "address": "1 Main St", "city": "Austin", "state": "TX"}`))
	if err != nil {
		t.Fatal(err)
	}

	patched, err := svc.UpdateVenue(ctx, v.ID, []byte(`{"city": "Dallas"}`), graph.PartialUpdate)
	if err != nil {
		t.Fatal(err)
	}
	if patched.City != "Dallas" || patched.Name != "Hall A" || patched.State != "TX" {
		t.Fatalf("unexpected venue after patch: %+v", patched)
	}

	if _, err := svc.UpdateVenue(ctx, v.ID, []byte(`{"name": "Hall B"}`), graph.FullUpdate); !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.DeleteVenue(ctx, v.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.FindVenue(ctx, v.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
