// Package roles derives the caller's display state from the contract's
// combined role query. Results are never cached: every refresh or reconnect
// re-queries the chain.
package roles

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/certichain/certichain/internal/chain"
	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/models"
)

// ContractReader is the read surface the permission view needs.
type ContractReader interface {
	AdminInfo(ctx context.Context, caller common.Address) (models.RoleInfo, error)
	Owner(ctx context.Context) (common.Address, error)
	IsAdmin(ctx context.Context, account common.Address) (bool, error)
}

// Service answers "what may this caller do" questions.
type Service struct {
	reader ContractReader
	log    *logger.Logger
}

func NewService(reader ContractReader, log *logger.Logger) *Service {
	return &Service{reader: reader, log: log}
}

// Refresh issues the single combined role query for the caller and derives
// exactly one of the three display states. Owners additionally get the
// roster summary (owner address alongside the total admin count already in
// the query result).
func (s *Service) Refresh(ctx context.Context, caller common.Address) (models.RoleState, error) {
	info, err := s.reader.AdminInfo(ctx, caller)
	if err != nil {
		return models.RoleState{}, chain.Classify(err)
	}

	state := models.RoleState{
		Info: info,
		View: info.View(),
	}

	if state.View == models.RoleOwner {
		ownerAddr, err := s.reader.Owner(ctx)
		if err != nil {
			return models.RoleState{}, chain.Classify(err)
		}
		state.Owner = ownerAddr
	}

	s.log.Debug().
		Str("caller", caller.Hex()).
		Str("view", state.View.String()).
		Uint64("total_admins", info.TotalAdmins).
		Msg("role state refreshed")

	return state, nil
}

// CheckAddress classifies an arbitrary address: owner beats admin beats
// plain user. Owner tooling; works over the anonymous read client.
func (s *Service) CheckAddress(ctx context.Context, account common.Address) (models.AddressRole, error) {
	isAdmin, err := s.reader.IsAdmin(ctx, account)
	if err != nil {
		return models.AddressRoleNone, chain.Classify(err)
	}

	ownerAddr, err := s.reader.Owner(ctx)
	if err != nil {
		return models.AddressRoleNone, chain.Classify(err)
	}

	switch {
	case account == ownerAddr:
		return models.AddressRoleOwner, nil
	case isAdmin:
		return models.AddressRoleAdmin, nil
	default:
		return models.AddressRoleNone, nil
	}
}
