package service

import (
	"exampleapi/internal/model"
	"exampleapi/internal/repository"
	"exampleapi/internal/validator"
)

func NewTargetService(repo repository.CRUD[model.Target], v *validator.Validator) Resource[model.Target, model.TargetInput] {
	return newCRUDService(repo, v,
		func(in *model.TargetInput) *model.Target {
			return &model.Target{
				AudienceID:         *in.AudienceID,
				BaseAudienceID:     *in.BaseAudienceID,
				BrandID:            *in.BrandID,
				Creator:            in.Creator,
				Name:               in.Name,
				InstagramPlacement: in.InstagramPlacement,
				LatestProfile:      in.LatestProfile,
			}
		},
		func(t *model.Target) *model.TargetInput {
			return &model.TargetInput{
				AudienceID:         ptr(t.AudienceID),
				BaseAudienceID:     ptr(t.BaseAudienceID),
				BrandID:            ptr(t.BrandID),
				Creator:            clonePtr(t.Creator),
				Name:               clonePtr(t.Name),
				InstagramPlacement: t.InstagramPlacement,
				LatestProfile:      clonePtr(t.LatestProfile),
			}
		},
	)
}

func NewCategoryService(
	repo repository.CRUD[model.FacebookAdTargetingCategory],
	v *validator.Validator,
) Resource[model.FacebookAdTargetingCategory, model.FacebookAdTargetingCategoryInput] {
	return newCRUDService(repo, v,
		func(in *model.FacebookAdTargetingCategoryInput) *model.FacebookAdTargetingCategory {
			return &model.FacebookAdTargetingCategory{
				AudienceType: in.AudienceType,
				PlatformID:   in.PlatformID,
				Name:         in.Name,
				Description:  in.Description,
				Path:         in.Path,
			}
		},
		func(c *model.FacebookAdTargetingCategory) *model.FacebookAdTargetingCategoryInput {
			return &model.FacebookAdTargetingCategoryInput{
				AudienceType: c.AudienceType,
				PlatformID:   c.PlatformID,
				Name:         c.Name,
				Description:  clonePtr(c.Description),
				Path:         clonePtr(c.Path),
			}
		},
	)
}

// NewProfileService builds the profiles use cases. Creating a profile makes
// it the latest profile of its target.
func NewProfileService(repo repository.CRUD[model.Profile], v *validator.Validator) Resource[model.Profile, model.ProfileInput] {
	return newCRUDService(repo, v,
		func(in *model.ProfileInput) *model.Profile {
			return &model.Profile{
				Target:            *in.Target,
				AudienceReach:     *in.AudienceReach,
				BaseAudienceReach: *in.BaseAudienceReach,
				BiasNormalizer:    in.BiasNormalizer,
			}
		},
		func(p *model.Profile) *model.ProfileInput {
			return &model.ProfileInput{
				Target:            ptr(p.Target),
				AudienceReach:     ptr(p.AudienceReach),
				BaseAudienceReach: ptr(p.BaseAudienceReach),
				BiasNormalizer:    p.BiasNormalizer,
			}
		},
	)
}

func NewProfileDatumService(repo repository.CRUD[model.ProfileDatum], v *validator.Validator) Resource[model.ProfileDatum, model.ProfileDatumInput] {
	return newCRUDService(repo, v,
		func(in *model.ProfileDatumInput) *model.ProfileDatum {
			return &model.ProfileDatum{
				Category:         *in.Category,
				BiasedIndex:      *in.BiasedIndex,
				UnbiasedIndex:    in.UnbiasedIndex,
				OpportunityScore: *in.OpportunityScore,
				ReachAudience:    *in.ReachAudience,
				ReachBase:        *in.ReachBase,
			}
		},
		func(d *model.ProfileDatum) *model.ProfileDatumInput {
			return &model.ProfileDatumInput{
				Category:         ptr(d.Category),
				BiasedIndex:      ptr(d.BiasedIndex),
				UnbiasedIndex:    clonePtr(d.UnbiasedIndex),
				OpportunityScore: ptr(d.OpportunityScore),
				ReachAudience:    ptr(d.ReachAudience),
				ReachBase:        ptr(d.ReachBase),
			}
		},
	)
}
