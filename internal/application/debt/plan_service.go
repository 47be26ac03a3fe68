package debt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// PlanService handles amortization plans and their installment schedules
type PlanService struct {
	planRepo        debt.PlanRepository
	installmentRepo debt.InstallmentRepository
	scope           TransactionScope
	logger          *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(
	planRepo debt.PlanRepository,
	installmentRepo debt.InstallmentRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		planRepo:        planRepo,
		installmentRepo: installmentRepo,
		scope:           scope,
		logger:          logger,
	}
}

// Create creates a plan and generates its full installment schedule
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanDetailResponse, error) {
	plan, err := debt.NewAmortizationPlan(
		req.Counterparty,
		debt.PlanKind(req.Kind),
		valueobject.NewMoney(req.TotalCents),
		req.InstallmentCount,
		req.StartDate,
		req.CadenceMonths,
	)
	if err != nil {
		return nil, err
	}

	installments, err := debt.GenerateSchedule(plan)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Plans().Save(ctx, plan); err != nil {
			return err
		}
		return repos.Installments().SaveAll(ctx, installments)
	})
	if err != nil {
		return nil, err
	}

	return s.detail(plan, installments), nil
}

// GetByID retrieves a plan with its schedule
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (*PlanDetailResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	installments, err := s.installmentRepo.FindByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	refs := make([]*debt.Installment, len(installments))
	for i := range installments {
		refs[i] = &installments[i]
	}
	return s.detail(plan, refs), nil
}

// List retrieves plans matching the filter
func (s *PlanService) List(ctx context.Context, filter PlanListFilter) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindAll(ctx, debt.PlanFilter{
		Kind:       debt.PlanKind(filter.Kind),
		ActiveOnly: filter.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = *ToPlanResponse(&plans[i])
	}
	return responses, nil
}

// Regenerate rebuilds a plan's schedule from its current total and count.
// The default replaces only the unpaid tail; paid rows are history and
// stay untouched. With ResetPayments the paid count is zeroed and the
// whole schedule is rebuilt.
func (s *PlanService) Regenerate(ctx context.Context, id uuid.UUID, req RegeneratePlanRequest) (*PlanDetailResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.State.IsDeleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot regenerate a deleted plan")
	}

	var installments []*debt.Installment
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.ResetPayments {
			plan.ResetPayments()
			if err := repos.Installments().DeleteByPlan(ctx, plan.ID); err != nil {
				return err
			}
			installments, err = debt.GenerateSchedule(plan)
			if err != nil {
				return err
			}
		} else {
			existing, err := repos.Installments().FindByPlan(ctx, plan.ID)
			if err != nil {
				return err
			}
			if err := repos.Installments().DeleteUnpaidByPlan(ctx, plan.ID); err != nil {
				return err
			}
			installments, err = debt.UnpaidTail(plan, existing)
			if err != nil {
				return err
			}
		}

		if err := repos.Plans().Save(ctx, plan); err != nil {
			return err
		}
		if len(installments) > 0 {
			return repos.Installments().SaveAll(ctx, installments)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(plan, installments), nil
}

// Extend appends one installment of the given amount to the plan and
// rebuilds the unpaid tail around the new total.
func (s *PlanService) Extend(ctx context.Context, id uuid.UUID, amountCents int64) (*PlanDetailResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := plan.Extend(valueobject.NewMoney(amountCents)); err != nil {
		return nil, err
	}

	var installments []*debt.Installment
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Installments().FindByPlan(ctx, plan.ID)
		if err != nil {
			return err
		}
		if err := repos.Installments().DeleteUnpaidByPlan(ctx, plan.ID); err != nil {
			return err
		}
		installments, err = debt.RedistributeUnpaid(plan, existing)
		if err != nil {
			return err
		}

		if err := repos.Plans().Save(ctx, plan); err != nil {
			return err
		}
		if len(installments) > 0 {
			return repos.Installments().SaveAll(ctx, installments)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(plan, installments), nil
}

// Pay marks an installment as paid and rolls the payment up to its plan.
// Settling the last installment deactivates the plan.
func (s *PlanService) Pay(ctx context.Context, installmentID uuid.UUID, req PayInstallmentRequest) (*InstallmentResponse, error) {
	installment, err := s.installmentRepo.FindByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByID(ctx, installment.PlanID)
	if err != nil {
		return nil, err
	}

	if err := installment.Pay(req.PaidDate, req.TransactionID); err != nil {
		return nil, err
	}
	if err := plan.RegisterPayment(); err != nil {
		return nil, err
	}

	plan.AddDomainEvent(debt.NewInstallmentPaidEvent(plan, installment))
	if plan.IsSettled() {
		plan.AddDomainEvent(debt.NewPlanSettledEvent(plan))
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Installments().Save(ctx, installment); err != nil {
			return err
		}
		return repos.Plans().Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return ToInstallmentResponse(installment), nil
}

// Unpay reverses a paid installment, reactivating a settled plan
func (s *PlanService) Unpay(ctx context.Context, installmentID uuid.UUID) (*InstallmentResponse, error) {
	installment, err := s.installmentRepo.FindByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByID(ctx, installment.PlanID)
	if err != nil {
		return nil, err
	}

	if err := installment.Unpay(); err != nil {
		return nil, err
	}
	if err := plan.RevertPayment(); err != nil {
		return nil, err
	}

	plan.AddDomainEvent(debt.NewInstallmentRevertedEvent(plan, installment))

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Installments().Save(ctx, installment); err != nil {
			return err
		}
		return repos.Plans().Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return ToInstallmentResponse(installment), nil
}

// Delete soft-deletes a plan. Its installments stay behind for audit.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := plan.Delete(); err != nil {
		return err
	}
	return s.planRepo.Save(ctx, plan)
}

// RecordWonSale generates the collection schedule for a sale opportunity
// that entered the won state. The opportunity is the idempotency key: a
// plan already generated for it blocks a second generation, however many
// times the opportunity bounces back into won.
func (s *PlanService) RecordWonSale(ctx context.Context, req WonSaleRequest) (*PlanDetailResponse, error) {
	if existing, err := s.planRepo.FindBySource(ctx, req.OpportunityID); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	} else if existing != nil {
		return nil, shared.NewDomainError("ALREADY_GENERATED", "Installments already exist for this opportunity")
	}

	terms := debt.PaymentTerms(req.PaymentTerms)
	count := s.installmentCountFor(terms)

	plan, err := debt.NewAmortizationPlan(
		req.Counterparty,
		debt.PlanKindSale,
		valueobject.NewMoney(req.TotalCents),
		count,
		req.ClosingDate,
		1,
	)
	if err != nil {
		return nil, err
	}
	plan.SetSource(req.OpportunityID)

	installments, err := debt.GenerateSaleSchedule(plan, terms, req.ClosingDate)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Plans().Save(ctx, plan); err != nil {
			return err
		}
		return repos.Installments().SaveAll(ctx, installments)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("won sale amortized",
		zap.String("plan_id", plan.ID.String()),
		zap.String("opportunity_id", req.OpportunityID.String()),
		zap.String("terms", terms.String()),
		zap.Int("installments", len(installments)))

	return s.detail(plan, installments), nil
}

func (s *PlanService) installmentCountFor(terms debt.PaymentTerms) int {
	switch terms {
	case debt.TermsHalfUpfront, debt.TermsDeposit30:
		return 2
	case debt.TermsQuarterly:
		return 4
	default:
		return 1
	}
}

func (s *PlanService) detail(plan *debt.AmortizationPlan, installments []*debt.Installment) *PlanDetailResponse {
	resp := &PlanDetailResponse{
		Plan:         *ToPlanResponse(plan),
		Installments: make([]InstallmentResponse, len(installments)),
	}
	for i, inst := range installments {
		resp.Installments[i] = *ToInstallmentResponse(inst)
	}
	return resp
}
