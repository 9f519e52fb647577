package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kola-Kola/personal-finance/internal/live"
	"github.com/Kola-Kola/personal-finance/internal/models"
)

type staticState live.State

func (s staticState) State() live.State { return live.State(s) }

var _ StateReader = staticState{}

func TestStateHandler_GetState(t *testing.T) {
	state := staticState{
		Transactions: []models.Transaction{{Base: models.Base{ID: "a"}, Category: models.CategoryBills}},
		Error:        "refresh failed",
	}
	r := gin.New()
	r.GET("/state", NewStateHandler(state).GetState)

	rec := doRequest(r, "GET", "/state", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["is_loading"] != false || result["error"] != "refresh failed" {
		t.Errorf("unexpected state: %v", result)
	}
	txs := result["transactions"].([]interface{})
	if len(txs) != 1 || txs[0].(map[string]interface{})["id"] != "a" {
		t.Errorf("unexpected transactions: %v", txs)
	}
}
