package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	baseURL = "http://localhost:9000/api/orders/create-order"
	mugID   = "9b1f4c2e-6a0d-4f3b-8c55-2d7e1a0b3c01"
	teeID   = "9b1f4c2e-6a0d-4f3b-8c55-2d7e1a0b3c02"
)

var sizes = []string{"S", "M", "L", "XXL"}

type cartItem struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
}

type address struct {
	FullName   string `json:"fullName"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type paymentInfo struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

type createOrderRequest struct {
	Customer       customer    `json:"customer"`
	Shipping       address     `json:"shipping"`
	ShippingMethod string      `json:"shippingMethod"`
	Payment        paymentInfo `json:"payment"`
	Items          []cartItem  `json:"items"`
}

// ключи, которые отправляются повторно, чтобы проверить идемпотентность
var (
	mu       sync.Mutex
	usedKeys []string
)

func main() {
	for {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(doRequest)
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func randomID(length int) string {
	chars := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	id := make([]rune, length)
	for i := range id {
		id[i] = chars[rand.Intn(len(chars))]
	}
	return string(id)
}

func randomCart() createOrderRequest {
	var req createOrderRequest
	req.Customer = customer{Name: "Load Test", Email: fmt.Sprintf("user%d@example.com", rand.Intn(1000))}
	req.Shipping = address{
		FullName:   "Load Test",
		Line1:      "Street " + strconv.Itoa(rand.Intn(100)),
		City:       "City" + randomID(4),
		PostalCode: fmt.Sprintf("%05d", rand.Intn(99999)),
		Country:    "US",
	}
	req.ShippingMethod = "standard"
	if rand.Intn(3) == 0 {
		req.ShippingMethod = "express"
	}
	req.Payment = paymentInfo{PaymentIntentID: "pi_" + randomID(16)}

	req.Items = append(req.Items, cartItem{ProductID: mugID, Quantity: rand.Intn(3) + 1})
	if rand.Intn(2) == 0 {
		// XXL нет в каталоге, такие запросы должны получать 400
		req.Items = append(req.Items, cartItem{ProductID: teeID, Size: sizes[rand.Intn(len(sizes))], Quantity: 1})
	}
	return req
}

func idempotencyKey() string {
	mu.Lock()
	defer mu.Unlock()
	if len(usedKeys) > 0 && rand.Intn(5) == 0 {
		return usedKeys[rand.Intn(len(usedKeys))]
	}
	key := randomID(24)
	usedKeys = append(usedKeys, key)
	return key
}

func doRequest() {
	body, err := json.Marshal(randomCart())
	if err != nil {
		fmt.Println("Ошибка сериализации:", err)
		return
	}

	key := idempotencyKey()
	req, err := http.NewRequest(http.MethodPost, baseURL, bytes.NewReader(body))
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Ошибка запроса:", err)
	} else {
		fmt.Println("POST", key, "->", resp.Status)
		resp.Body.Close()
	}
}
