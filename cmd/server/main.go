package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/uslu-pos/api/internal/config"
	"github.com/uslu-pos/api/internal/pricing"
	"github.com/uslu-pos/api/internal/router"
	"github.com/uslu-pos/api/internal/service"
	"github.com/uslu-pos/api/internal/storage"
	"github.com/uslu-pos/api/internal/ws"
)

func main() {
	cfg := config.Load()

	kv, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("open data dir: %v", err)
	}

	orders, err := storage.NewOrderStore(kv)
	if err != nil {
		log.Fatalf("load orders: %v", err)
	}
	contacts, err := storage.NewContactStore(kv)
	if err != nil {
		log.Fatalf("load contacts: %v", err)
	}
	receipts, err := storage.NewReceiptCounter(kv)
	if err != nil {
		log.Fatalf("load receipt counter: %v", err)
	}

	rule := pricing.RuleForMode(cfg.DeliveryFeeMode)
	log.Printf("Delivery fee mode: %s", rule.Mode())

	svc := service.NewOrderService(orders, receipts, rule)

	hub := ws.NewHub()
	go hub.Run()

	r, err := router.New(cfg, svc, contacts, hub)
	if err != nil {
		log.Fatalf("init router: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
