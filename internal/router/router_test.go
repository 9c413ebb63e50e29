package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dipraise1/publicfund/internal/chain"
	"github.com/Dipraise1/publicfund/internal/config"
	"github.com/Dipraise1/publicfund/internal/notify"
	"github.com/Dipraise1/publicfund/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	testOwner = "0x0000000000000000000000000000000000001001"
	testDonor = "0x0000000000000000000000000000000000001111"
	testDest  = "0x0000000000000000000000000000000000006666"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	notifier, err := notify.NewNotifier(db, 2)
	require.NoError(t, err)
	t.Cleanup(notifier.Close)

	cfg := &config.Config{
		Vault: config.VaultConfig{
			Owner:            testOwner,
			VotingDuration:   7 * 24 * 60 * 60,
			ProposalInterval: 24 * 60 * 60,
			QuorumPercent:    51,
		},
	}

	return Setup(db, chain.NewLedgerMover(), notifier, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 零金额要穿过绑定层，由业务层给出统一错误码
func TestDonateEthZeroAmountReachesLogic(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/donations/eth", gin.H{
		"donor":  testDonor,
		"amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "amount must be greater than 0")
}

func TestEmergencyWithdrawZeroAmountReachesLogic(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/vault/emergency-withdraw", gin.H{
		"caller": testOwner,
		"amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "amount must be greater than 0")
}

// 提案列表与total计数必须一致
func TestProposalListTotalMatches(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/donations/eth", gin.H{
		"donor":  testDonor,
		"amount": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/proposals", gin.H{
		"proposer":   testDonor,
		"title":      "Community Grant",
		"recipient":  testDest,
		"eth_amount": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
	list := httptest.NewRecorder()
	r.ServeHTTP(list, req)
	require.Equal(t, http.StatusOK, list.Code)

	var resp struct {
		Proposals []json.RawMessage `json:"proposals"`
		Total     int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	assert.Len(t, resp.Proposals, int(resp.Total))
}
