package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// RequirementRepository provides access to feedstock procurement requirements
type RequirementRepository interface {
	GetAllRequirements() ([]*entities.FeedstockRequirement, error)
	SaveRequirement(requirement *entities.FeedstockRequirement) error
}
