package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

func main() {
	baseURL := flag.String("target", "http://localhost:3300", "Base URL of a running zoo-api")
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	flag.Parse()

	waitForApp(*baseURL + "/health")

	id, err := createZoo(*baseURL, "Benchmark Zoo")
	if err != nil {
		log.Fatalf("Failed to create benchmark zoo: %v", err)
	}

	fmt.Printf("Running benchmark: %s duration, %d req/s\n", *duration, *rate)

	// alternate between the list and the single-record read
	var n uint64
	targeter := func(t *vegeta.Target) error {
		t.Method = http.MethodGet
		if atomic.AddUint64(&n, 1)%2 == 0 {
			t.URL = *baseURL + "/api/zoos"
		} else {
			t.URL = *baseURL + "/api/zoos/" + id
		}
		t.Header = http.Header{"Accept": []string{"application/json"}}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("Status codes:")
	codes := make([]string, 0, len(metrics.StatusCodes))
	for code := range metrics.StatusCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("  %s: %d\n", code, metrics.StatusCodes[code])
	}
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")

		uniqueErrors := make(map[string]bool)
		count := 0
		for _, msg := range metrics.Errors {
			if !uniqueErrors[msg] && count < 5 {
				fmt.Println(msg)

				uniqueErrors[msg] = true
				count++
			}
		}
	}
}

// createZoo inserts a zoo and returns its id as reported by the list endpoint.
func createZoo(baseURL, name string) (string, error) {
	body, _ := json.Marshal(map[string]string{"name": name})
	resp, err := http.Post(baseURL+"/api/zoos", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	resp, err = http.Get(baseURL + "/api/zoos")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var zoos []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&zoos); err != nil {
		return "", err
	}

	for i := len(zoos) - 1; i >= 0; i-- {
		if zoos[i].Name == name {
			return fmt.Sprintf("%d", zoos[i].ID), nil
		}
	}
	return "", fmt.Errorf("zoo %q not found after create", name)
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}
