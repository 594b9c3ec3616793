package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateConfirmation() entities.OrderConfirmation {
	price := decimal.New(int64(rand.Intn(5000)+100), -2)
	qty := rand.Intn(3) + 1
	subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
	tax := subtotal.Mul(decimal.RequireFromString("0.115")).Round(2)
	shipping := decimal.NewFromInt(5)

	return entities.OrderConfirmation{
		EventID: uuid.NewString(),
		OrderID: uuid.NewString(),
		Email:   fmt.Sprintf("user%d@example.com", rand.Intn(1000)),
		Name:    "John Doe",
		Items: []entities.ConfirmationLine{{
			Name:      "Item " + randomString(5),
			Quantity:  qty,
			UnitPrice: price.StringFixed(2),
			LineTotal: subtotal.StringFixed(2),
		}},
		Subtotal:     subtotal.StringFixed(2),
		Tax:          tax.StringFixed(2),
		ShippingCost: shipping.StringFixed(2),
		Total:        subtotal.Add(tax).Add(shipping).StringFixed(2),
		Shipping: entities.ConfirmationShipAddress{
			FullName:   "John Doe",
			Line1:      fmt.Sprintf("Street %d", rand.Intn(100)),
			City:       "City" + randomString(4),
			PostalCode: fmt.Sprintf("%05d", rand.Intn(99999)),
			Country:    "US",
		},
	}
}

func main() {
	writer := &kafka.Writer{
		Addr:  kafka.TCP("localhost:9092"),
		Topic: entities.TopicOrderConfirmation,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			event := generateConfirmation()
			data, _ := json.Marshal(event)
			msg := kafka.Message{Key: []byte(event.OrderID), Value: data}
			// иногда отправляем дубль, консьюмер должен отправить письмо один раз
			msgs := []kafka.Message{msg}
			if rand.Intn(4) == 0 {
				msgs = append(msgs, msg)
			}
			if err := writer.WriteMessages(ctx, msgs...); err != nil {
				log.Println("failed to write event", err)
				continue
			}
			log.Println("confirmation event generated", event.EventID, "order", event.OrderID)
		case <-ctx.Done():
			return
		}
	}
}
