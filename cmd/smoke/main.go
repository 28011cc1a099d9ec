package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("VERSUS_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	fmt.Println("Starting smoke test...")

	fmt.Println("1. Checking health...")
	if !sendRequest(http.MethodGet, baseURL+"/health", nil) {
		fmt.Println("FAILED: Health")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health")

	fmt.Println("2. Comparing products...")
	payload := map[string]string{
		"product1":     "nokia g42",
		"product2":     "moto g34",
		"user_request": "I really like smaller phones",
	}
	if !sendRequest(http.MethodPost, baseURL+"/compare_products", payload) {
		fmt.Println("FAILED: Compare products")
		os.Exit(1)
	}
	fmt.Println("PASSED: Compare products")
}

func sendRequest(method, url string, payload any) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err == nil {
		respBody = pretty.Bytes()
	}
	fmt.Printf("Response: %s\n", string(respBody))
	return true
}
