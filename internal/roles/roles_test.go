package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/models"
)

type fakeReader struct {
	info       models.RoleInfo
	infoErr    error
	owner      common.Address
	ownerErr   error
	admins     map[common.Address]bool
	infoCalls  int
	ownerCalls int
}

func (f *fakeReader) AdminInfo(_ context.Context, _ common.Address) (models.RoleInfo, error) {
	f.infoCalls++
	return f.info, f.infoErr
}

func (f *fakeReader) Owner(_ context.Context) (common.Address, error) {
	f.ownerCalls++
	return f.owner, f.ownerErr
}

func (f *fakeReader) IsAdmin(_ context.Context, account common.Address) (bool, error) {
	return f.admins[account], nil
}

var (
	ownerAddr = common.HexToAddress("0x1111111111111111111111111111111111111111")
	adminAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")
	plainAddr = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

// TestRefresh_DerivesExclusiveViews verifies the three mutually exclusive
// display states.
func TestRefresh_DerivesExclusiveViews(t *testing.T) {
	tests := []struct {
		name      string
		info      models.RoleInfo
		expected  models.RoleView
		wantOwner bool
	}{
		{
			name:      "owner wins over admin flag",
			info:      models.RoleInfo{TotalAdmins: 3, IsAdmin: true, IsOwner: true},
			expected:  models.RoleOwner,
			wantOwner: true,
		},
		{
			name:     "admin without ownership",
			info:     models.RoleInfo{TotalAdmins: 3, IsAdmin: true},
			expected: models.RoleManufacturer,
		},
		{
			name:     "plain user",
			info:     models.RoleInfo{TotalAdmins: 3},
			expected: models.RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeReader{info: tt.info, owner: ownerAddr}
			svc := NewService(reader, logger.Nop())

			state, err := svc.Refresh(context.Background(), adminAddr)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, state.View)
			assert.Equal(t, tt.info, state.Info)
			if tt.wantOwner {
				assert.Equal(t, ownerAddr, state.Owner)
				assert.Equal(t, 1, reader.ownerCalls, "owner view triggers one roster-summary fetch")
			} else {
				assert.Equal(t, common.Address{}, state.Owner)
				assert.Zero(t, reader.ownerCalls)
			}
		})
	}
}

// TestRefresh_NoCaching verifies every refresh re-queries the contract.
func TestRefresh_NoCaching(t *testing.T) {
	reader := &fakeReader{info: models.RoleInfo{IsAdmin: true}}
	svc := NewService(reader, logger.Nop())

	for i := 0; i < 3; i++ {
		_, err := svc.Refresh(context.Background(), adminAddr)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, reader.infoCalls)
}

// TestRefresh_QueryError surfaces the classified failure.
func TestRefresh_QueryError(t *testing.T) {
	reader := &fakeReader{infoErr: errors.New("rpc down")}
	svc := NewService(reader, logger.Nop())

	_, err := svc.Refresh(context.Background(), adminAddr)
	require.Error(t, err)
}

// TestCheckAddress classifies arbitrary addresses, owner beating admin.
func TestCheckAddress(t *testing.T) {
	reader := &fakeReader{
		owner:  ownerAddr,
		admins: map[common.Address]bool{adminAddr: true, ownerAddr: true},
	}
	svc := NewService(reader, logger.Nop())

	tests := []struct {
		name     string
		account  common.Address
		expected models.AddressRole
	}{
		{name: "owner", account: ownerAddr, expected: models.AddressRoleOwner},
		{name: "admin", account: adminAddr, expected: models.AddressRoleAdmin},
		{name: "plain", account: plainAddr, expected: models.AddressRoleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := svc.CheckAddress(context.Background(), tt.account)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}
