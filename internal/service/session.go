package service

import (
	"context"
	"fmt"

	"pesapoint-backend/internal/domain"
	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type sessionService struct {
	sessions   repository.SessionRepository
	ledger     repository.LedgerRepository
	workers    repository.WorkerRepository
	merchants  repository.MerchantRepository
	registers  repository.CashRegisterRepository
	dispatcher Dispatcher
}

func NewSessionService(
	sessions repository.SessionRepository,
	ledger repository.LedgerRepository,
	workers repository.WorkerRepository,
	merchants repository.MerchantRepository,
	registers repository.CashRegisterRepository,
	dispatcher Dispatcher,
) SessionService {
	return &sessionService{
		sessions:   sessions,
		ledger:     ledger,
		workers:    workers,
		merchants:  merchants,
		registers:  registers,
		dispatcher: dispatcher,
	}
}

func (s *sessionService) Open(ctx context.Context, workerID, registerID int32) (*domain.WorkerSession, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsActive {
		return nil, fmt.Errorf("worker %d is deactivated: %w", workerID, domain.ErrUnauthorized)
	}
	register, err := s.registers.GetByID(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if register.MerchantID != worker.MerchantID {
		return nil, fmt.Errorf("cash register %d: %w", registerID, domain.ErrNotFound)
	}

	session, err := s.sessions.Open(ctx, workerID, registerID)
	if err != nil {
		return nil, err
	}
	logger.Info("session opened",
		"session_id", session.ID, "worker_id", workerID, "register_id", registerID,
		"initial_balance", session.InitialBalance)
	return session, nil
}

func (s *sessionService) Close(ctx context.Context, workerID int32) (*domain.SessionSummary, error) {
	session, err := s.sessions.Close(ctx, workerID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(ctx, session)
	if err != nil {
		return nil, err
	}
	logger.Info("session closed",
		"session_id", session.ID, "worker_id", workerID,
		"total_send", summary.TotalSend, "total_collect", summary.TotalCollect,
		"total_commission", summary.TotalCommission)

	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		logger.Error("session report skipped", "worker_id", workerID, "error", err)
		return summary, nil
	}
	merchant, err := s.merchants.GetByID(ctx, worker.MerchantID)
	if err != nil {
		logger.Error("session report skipped", "worker_id", workerID, "error", err)
		return summary, nil
	}
	s.dispatcher.SessionReport(worker, merchant.Name, summary)
	return summary, nil
}

func (s *sessionService) Summary(ctx context.Context, workerID int32) (*domain.SessionSummary, error) {
	session, err := s.sessions.GetOpen(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, session)
}

// summarize recomputes the session totals from the transaction log. The
// window is [StartTime, now): every entry the worker recorded since the
// session opened, corrections already folded into the row amounts.
func (s *sessionService) summarize(ctx context.Context, session *domain.WorkerSession) (*domain.SessionSummary, error) {
	transactions, err := s.ledger.ListByWorkerSince(ctx, session.WorkerID, session.StartTime)
	if err != nil {
		return nil, err
	}

	summary := &domain.SessionSummary{
		Session:         *session,
		TotalSend:       decimal.Zero,
		TotalCollect:    decimal.Zero,
		TotalCommission: decimal.Zero,
		TotalCorrected:  decimal.Zero,
		Transactions:    transactions,
	}
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionTypeSend:
			summary.TotalSend = summary.TotalSend.Add(t.Amount)
		case domain.TransactionTypeCollect:
			summary.TotalCollect = summary.TotalCollect.Add(t.Amount)
			summary.TotalCommission = summary.TotalCommission.Add(t.Commission)
		}
		if t.InitAmount.IsPositive() {
			summary.TotalCorrected = summary.TotalCorrected.Add(t.InitAmount)
		}
	}
	return summary, nil
}
