package service

import (
	"errors"

	"orderhub/internal/domain"
	"orderhub/internal/models"
	"orderhub/internal/repository"

	"gorm.io/gorm"
)

// Profile is the merged view of the minimal account record and the richer
// business record; the resolver is the only place the two are composed.
type Profile struct {
	UID                uint   `json:"uid"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Status             string `json:"status"`
	OnboardingRequired bool   `json:"onboarding_required"`

	BusinessName string `json:"business_name,omitempty"`
	OwnerName    string `json:"owner_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	About        string `json:"about,omitempty"`
	PlanTier     string `json:"plan_tier,omitempty"`
	TenantPath   string `json:"-"`

	Capabilities Capabilities `json:"capabilities"`
}

type ProfileService struct {
	userRepo     *repository.UserRepository
	businessRepo *repository.BusinessRepository
}

func NewProfileService(userRepo *repository.UserRepository, businessRepo *repository.BusinessRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo, businessRepo: businessRepo}
}

// Resolve composes the profile for an authenticated principal.
//   - Admins get the account record verbatim; no merge.
//   - Business principals get business fields merged with the account's
//     status and order-creation flag.
//   - A missing business record yields a placeholder with
//     onboarding_required and the most restrictive capability set.
//
// Disabled accounts are rejected upstream by the middleware; Resolve still
// fails closed if called directly.
func (s *ProfileService) Resolve(userID uint) (*Profile, error) {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u.IsDisabled() {
		return nil, ErrAccountDisabled
	}
	p := &Profile{
		UID:    u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
	if u.Role == domain.RoleAdmin {
		return p, nil
	}

	b, err := s.businessRepo.GetByOwnerID(u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p.OnboardingRequired = true
			p.Capabilities = RestrictedCapabilities()
			return p, nil
		}
		return nil, err
	}

	p.BusinessName = b.BusinessName
	p.OwnerName = b.OwnerName
	p.Phone = b.Phone
	p.Address = b.Address
	p.About = b.About
	p.PlanTier = b.PlanTier
	p.TenantPath = b.RootPath()
	p.Capabilities = Capabilities{
		// The account-level flag can switch off order creation regardless of
		// the plan snapshot.
		CanAddOrder:           b.CanAddOrder && u.CanCreateOrders,
		CanAddCustomer:        b.CanAddCustomer,
		CanAddProducts:        b.CanAddProducts,
		HasExportImportOption: b.HasExportImportOption,
		MaxOrderNumber:        b.MaxOrderNumber,
		MaxCustomerNumber:     b.MaxCustomerNumber,
		MaxProductNumber:      b.MaxProductNumber,
	}
	return p, nil
}

// CompleteOnboarding creates the business record for a principal that does
// not have one yet and applies the given plan snapshot.
func (s *ProfileService) CompleteOnboarding(userID uint, businessName, ownerName, phone, address, about string, plan *models.PlanDefinition) (*Profile, error) {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.businessRepo.GetByOwnerID(u.ID); err == nil {
		return s.Resolve(userID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	b := &models.Business{
		OwnerID:      u.ID,
		Email:        u.Email,
		BusinessName: businessName,
		OwnerName:    ownerName,
		Phone:        phone,
		Address:      address,
		About:        about,
	}
	if plan != nil {
		plan.ApplyTo(b)
	}
	if err := s.businessRepo.Create(b); err != nil {
		return nil, err
	}
	return s.Resolve(userID)
}
