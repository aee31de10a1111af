package entitlement

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/pkg/chain"
	"Go-Course-Market/pkg/course"
	"Go-Course-Market/pkg/purchase"
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
)

type (
	EntitlementService interface {
		CheckAccess(ctx context.Context, req domain.EntitlementRequest) (*domain.EntitlementResponse, error)
	}

	entitlementService struct {
		courseRepository   course.CourseRepository
		purchaseRepository purchase.PurchaseRepository
		oracle             chain.Oracle
	}
)

func NewEntitlementService(
	courseRepository course.CourseRepository,
	purchaseRepository purchase.PurchaseRepository,
	oracle chain.Oracle,
) EntitlementService {
	return &entitlementService{
		courseRepository:   courseRepository,
		purchaseRepository: purchaseRepository,
		oracle:             oracle,
	}
}

// CheckAccess decides whether the viewer may access the course's content. The
// checks short-circuit on the first grant; absence of proof denies. The chain
// oracle never raises: unreachable or unconfigured reads as false.
func (s *entitlementService) CheckAccess(ctx context.Context, req domain.EntitlementRequest) (*domain.EntitlementResponse, error) {
	crs, err := s.courseRepository.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	// Free courses are open to everyone, anonymous viewers included.
	if crs.IsFree {
		return grant(true), nil
	}

	if req.ViewerID != "" && req.ViewerID == crs.CreatorID.String() {
		return grant(true), nil
	}

	if req.ViewerID != "" {
		purchased, err := s.purchaseRepository.PurchaseExists(ctx, req.ViewerID, req.CourseID)
		if err != nil {
			// Infrastructure trouble must not surface from an access
			// check; no proof of access means no access.
			log.Printf("failed to check purchase for viewer %s on course %s: %v", req.ViewerID, req.CourseID, err)
		} else if purchased {
			return grant(true), nil
		}
	}

	if crs.ExternalID != nil && req.ViewerAddress != "" {
		return grant(s.oracle.HasOnChainAccess(ctx, *crs.ExternalID, req.ViewerAddress)), nil
	}

	return grant(false), nil
}

func grant(hasAccess bool) *domain.EntitlementResponse {
	return &domain.EntitlementResponse{HasAccess: hasAccess}
}
