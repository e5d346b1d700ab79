package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/insta-setter/internal/infra/database"
	"github.com/xavierca1/insta-setter/internal/usecase"
)

type KPIHandler struct {
	DataDir string
}

func NewKPIHandler(dataDir string) *KPIHandler {
	return &KPIHandler{DataDir: dataDir}
}

// HandleGetKPIs computa as métricas direto do lead store da conta. Conta
// sem store ainda devolve zeros com mensagem, não erro.
func (h *KPIHandler) HandleGetKPIs(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "accountId")
	label := account
	if label == "" {
		label = "default"
	}

	path := database.LeadStorePath(h.DataDir, account)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeJSON(w, http.StatusOK, usecase.EmptyKPIReport(label))
		return
	}

	db, err := database.NewDBConnection(path)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Msg: "failed to open lead store"})
		return
	}
	defer db.Close()

	report, err := usecase.BuildKPIReport(r.Context(), label, database.NewLeadRepository(db))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Msg: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}
