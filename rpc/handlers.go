package rpc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stakeengine/epoch"
	stakeerrors "stakeengine/errors"
	"stakeengine/stake"

	"github.com/go-chi/chi/v5"
)

// accountResponse is the JSON rendering of an account.KeyedAccount.
type accountResponse struct {
	Key      string `json:"key"`
	Lamports uint64 `json:"lamports"`
	Kind     string `json:"kind"`

	VoterPubkey       string `json:"voterPubkey,omitempty"`
	CreditsObserved   uint64 `json:"creditsObserved,omitempty"`
	Amount            uint64 `json:"amount,omitempty"`
	ActivationEpoch   uint64 `json:"activationEpoch,omitempty"`
	DeactivationEpoch uint64 `json:"deactivationEpoch,omitempty"`
}

func renderAccount(key [20]byte, st stake.State, lamports uint64) accountResponse {
	resp := accountResponse{
		Key:      formatAccountKey(key),
		Lamports: lamports,
		Kind:     kindString(st),
	}
	if st.IsStake() {
		s := st.Stake
		resp.VoterPubkey = formatVoterPubkey(s.VoterPubkey)
		resp.CreditsObserved = s.CreditsObserved
		resp.Amount = s.Amount
		resp.ActivationEpoch = s.ActivationEpoch
		resp.DeactivationEpoch = s.DeactivationEpoch
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, stakeerrors.ErrMissingRequiredSignature):
		status = http.StatusUnauthorized
	case errors.Is(err, stakeerrors.ErrInsufficientFunds),
		errors.Is(err, stakeerrors.ErrInvalidAccountData),
		errors.Is(err, stakeerrors.ErrInvalidArgument),
		errors.Is(err, stakeerrors.ErrUnbalancedInstruction):
		status = http.StatusBadRequest
	case errors.Is(err, stakeerrors.ErrNothingToCollect):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func pathAccountKey(r *http.Request) ([20]byte, error) {
	return parseAccountKey(chi.URLParam(r, "key"))
}

// handleFund credits the account named by the {key} path parameter.
// POST /accounts/{key}/fund {"lamports": n}
func (s *Service) handleFund(w http.ResponseWriter, r *http.Request) {
	key, err := pathAccountKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		Lamports uint64 `json:"lamports"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	acct := s.Fund(key, body.Lamports)
	writeJSON(w, http.StatusOK, renderAccount(acct.Key, acct.State, acct.Lamports))
}

// handleGetAccount reports the current state of the account named by {key}.
// GET /accounts/{key}
func (s *Service) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	key, err := pathAccountKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	acct, ok := s.Account(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "account not found"})
		return
	}
	writeJSON(w, http.StatusOK, renderAccount(acct.Key, acct.State, acct.Lamports))
}

// handleRegisterVoter creates a voter account redemptions can target.
// POST /voters {"voterPubkey": hex, "key": hex}
func (s *Service) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VoterPubkey string `json:"voterPubkey"`
		Key         string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pubkey, err := parseVoterPubkey(body.VoterPubkey)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	key, err := parseAccountKey(body.Key)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.RegisterVoter(pubkey, key)
	writeJSON(w, http.StatusCreated, map[string]string{"voterPubkey": formatVoterPubkey(pubkey)})
}

// handleCreditVote closes out the current epoch's credits for the voter
// named by {pubkey}.
// POST /voters/{pubkey}/credit {"credits": n, "commission": n}
func (s *Service) handleCreditVote(w http.ResponseWriter, r *http.Request) {
	pubkey, err := parseVoterPubkey(chi.URLParam(r, "pubkey"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		Credits    uint64 `json:"credits"`
		Commission uint8  `json:"commission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.CreditVote(pubkey, body.Credits, body.Commission); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDelegate commits lamports to a voter on behalf of {key}.
// POST /accounts/{key}/delegate {"voterPubkey": hex, "amount": n}
func (s *Service) handleDelegate(w http.ResponseWriter, r *http.Request) {
	key, err := pathAccountKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		VoterPubkey string `json:"voterPubkey"`
		Amount      uint64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	voterPubkey, err := parseVoterPubkey(body.VoterPubkey)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	acct, err := s.Delegate(key, voterPubkey, body.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAccount(acct.Key, acct.State, acct.Lamports))
}

// handleDeactivate begins cooldown on {key}'s delegation.
// POST /accounts/{key}/deactivate
func (s *Service) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	key, err := pathAccountKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	acct, err := s.Deactivate(key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAccount(acct.Key, acct.State, acct.Lamports))
}

// handleWithdraw moves lamports from {key} to the destination in the body.
// POST /accounts/{key}/withdraw {"lamports": n, "to": hex}
func (s *Service) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	key, err := pathAccountKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		Lamports uint64 `json:"lamports"`
		To       string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	to, err := parseAccountKey(body.To)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	acct, err := s.Withdraw(key, body.Lamports, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAccount(acct.Key, acct.State, acct.Lamports))
}

// handleRedeem walks {key}'s voter credit history and pays out the split.
// POST /accounts/{key}/redeem {"rewardsPool": hex, "pointValue": f}
func (s *Service) handleRedeem(w http.ResponseWriter, r *http.Request) {
	key, err := pathAccountKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		RewardsPool string  `json:"rewardsPool"`
		PointValue  float64 `json:"pointValue"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rewardsPool, err := parseAccountKey(body.RewardsPool)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	acct, err := s.Redeem(key, rewardsPool, body.PointValue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAccount(acct.Key, acct.State, acct.Lamports))
}

// handleAdvanceEpoch closes the current epoch and returns the history entry
// it produced.
// POST /epoch/advance
func (s *Service) handleAdvanceEpoch(w http.ResponseWriter, r *http.Request) {
	entry := s.AdvanceEpoch()
	writeJSON(w, http.StatusOK, map[string]uint64{
		"effective":    entry.Effective,
		"activating":   entry.Activating,
		"deactivating": entry.Deactivating,
	})
}

// handleGetHistory reports the retained history entry for the epoch named
// by {epoch}, if still within the retention window.
// GET /epoch/{epoch}
func (s *Service) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	e, err := parseEpochParam(chi.URLParam(r, "epoch"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	entry, ok := s.history.Get(e)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no retained entry for that epoch"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{
		"effective":    entry.Effective,
		"activating":   entry.Activating,
		"deactivating": entry.Deactivating,
	})
}

// handleFlushArchive writes every evicted history entry collected since the
// last flush to a parquet file.
// POST /archive/flush {"path": "..."}
func (s *Service) handleFlushArchive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	n, err := s.FlushArchive(body.Path)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"entriesWritten": n})
}

func parseEpochParam(s string) (epoch.Epoch, error) {
	return strconv.ParseUint(s, 10, 64)
}
