package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var sampleEvents = []string{"Purchase", "InitiateCheckout", "AddToCart", "CompleteRegistration"}

func main() {
	targetURL := flag.String("url", "http://localhost:8080/api/zid", "Target webhook URL")
	testEventCode := flag.String("test-event-code", "", "TikTok test_event_code to route events to the test surface")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 50, "Requests per second limit")
	flag.Parse()

	if *testEventCode == "" {
		log.Println("WARNING: no -test-event-code given, events will count as live conversions")
	}

	log.Printf("Starting load test on %s", *targetURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	var wg sync.WaitGroup
	var successCount, upstreamRejected, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), *rps)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 20 * time.Second,
			}

			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				payload, err := json.Marshal(samplePayload(workerID, *testEventCode))
				if err != nil {
					continue // Should not happen
				}

				req, err := http.NewRequestWithContext(ctx, http.MethodPost, *targetURL, bytes.NewReader(payload))
				if err != nil {
					continue
				}
				req.Header.Set("Content-Type", "application/json")

				resp, err := client.Do(req)
				if err != nil {
					errorCount.Add(1)
					continue
				}

				var body struct {
					OK         bool `json:"ok"`
					HTTPStatus int  `json:"http_status"`
				}
				_ = json.NewDecoder(resp.Body).Decode(&body)
				resp.Body.Close()

				switch {
				case resp.StatusCode != http.StatusOK || !body.OK:
					errorCount.Add(1)
				case body.HTTPStatus < 200 || body.HTTPStatus > 299:
					upstreamRejected.Add(1)
				default:
					successCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()

	totalRequests := successCount.Load() + upstreamRejected.Load() + errorCount.Load()
	actualRPS := float64(totalRequests) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", totalRequests)
	log.Printf("Forwarded (2xx upstream): %d", successCount.Load())
	log.Printf("Rejected upstream: %d", upstreamRejected.Load())
	log.Printf("Errors: %d", errorCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}

func samplePayload(workerID int, testEventCode string) map[string]any {
	p := map[string]any{
		"event":    sampleEvents[rand.Intn(len(sampleEvents))],
		"event_id": uuid.NewString(),
		"value":    float64(rand.Intn(50000)) / 100,
		"currency": "sar",
		"user": map[string]any{
			"email":       "load-test+" + uuid.NewString()[:8] + "@example.com",
			"phone":       fmt.Sprintf("+96650000%04d", workerID),
			"external_id": "worker-" + uuid.NewString()[:8],
		},
	}
	if testEventCode != "" {
		p["test_event_code"] = testEventCode
	}
	return p
}
