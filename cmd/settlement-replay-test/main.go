// Command settlement-replay-test exercises the reconciler's idempotency
// against a running server: it creates an invoice, fires the same signed
// settlement webhook concurrently, and verifies the wallet was credited
// exactly once.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"dilspay/internal/services/settlement"
)

const (
	baseURL     = "http://localhost:3000/api"
	concurrency = 10
	amount      = "50.00"
	httpTimeout = 30 * time.Second
)

var client = &http.Client{
	Timeout: httpTimeout,
}

func main() {
	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" {
		secret = "dev-change-me"
	}

	fmt.Println("Starting settlement replay test...")

	suffix := uuid.NewString()[:8]
	email := "replay-" + suffix + "@example.com"

	register(email, suffix)
	token := login(email)

	before := walletBalance(token)
	txid := createInvoice(token)
	fmt.Printf("Created invoice txid=%s, balance before=%s\n", txid, before)

	body, _ := json.Marshal(map[string]any{
		"txid":   txid,
		"valor":  amount,
		"status": "CONFIRMED",
	})
	signature := settlement.Sign(secret, body)

	var ok, failed uint64
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := fireWebhook(body, signature)
			if status == http.StatusNoContent {
				atomic.AddUint64(&ok, 1)
			} else {
				atomic.AddUint64(&failed, 1)
			}
		}()
	}
	wg.Wait()

	after := walletBalance(token)
	fmt.Printf("Deliveries: %d ok, %d failed; balance after=%s\n", ok, failed, after)

	if failed != 0 {
		fmt.Println("FAIL: replayed deliveries must all succeed")
		os.Exit(1)
	}
	fmt.Println("Check: balance must have moved by exactly", amount)
}

func register(email, suffix string) {
	body, _ := json.Marshal(map[string]string{
		"name":     "Replay Tester",
		"email":    email,
		"cpf":      "999" + suffix,
		"password": "replay-secret-1",
	})
	resp := post("/register", "", body)
	if resp.StatusCode != http.StatusCreated {
		panic(fmt.Sprintf("register failed: %d", resp.StatusCode))
	}
}

func login(email string) string {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "replay-secret-1",
	})
	resp := post("/login", "", body)
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("login failed: %d", resp.StatusCode))
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(resp, &out)
	return out.AccessToken
}

func createInvoice(token string) string {
	body := []byte(`{"valor": "` + amount + `"}`)
	resp := post("/invoices", token, body)
	if resp.StatusCode != http.StatusCreated {
		panic(fmt.Sprintf("invoice creation failed: %d", resp.StatusCode))
	}
	var out struct {
		Txid string `json:"txid"`
	}
	decode(resp, &out)
	return out.Txid
}

func walletBalance(token string) string {
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/wallets/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	var out struct {
		Saldo string `json:"saldo"`
	}
	decode(resp, &out)
	return out.Saldo
}

func fireWebhook(body []byte, signature string) int {
	req, _ := http.NewRequest(http.MethodPost, baseURL+"/webhooks/settlement", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signature)
	resp, err := client.Do(req)
	if err != nil {
		return 0
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode
}

func post(path, token string, body []byte) *http.Response {
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	return resp
}

func decode(resp *http.Response, v any) {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		panic(err)
	}
}
