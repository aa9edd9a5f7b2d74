package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Probes every list endpoint of the institute backend and reports status and
// latency, so a misconfigured base URL or a half-deployed backend shows up
// before the gateway does.

type probe struct {
	Entity string
	Path   string
}

type result struct {
	Probe    probe
	Status   int
	Count    int
	Duration time.Duration
	Error    error
}

var defaultProbes = []probe{
	{"Department", "Department/GetDepartments"},
	{"Designation", "Designation/GetDesignations"},
	{"Course", "Course/GetCourses"},
	{"Classroom", "Classroom/GetClassrooms"},
	{"Instructor", "Instructor/GetInstructors"},
	{"Employee", "Employee/GetEmployees"},
	{"Visitor", "Visitor/GetVisitors"},
	{"Registration", "Registration/GetRegistrations"},
	{"Admission", "Admission/GetAdmissions"},
	{"Offer", "Offer/GetOffers"},
	{"Slot", "Slot/GetSlots"},
	{"Schedule", "Schedule/GetSchedules"},
	{"Batch", "Batch/GetBatches"},
	{"CourseCombo", "CourseCombo/GetCourseCombos"},
	{"DailySales", "DailySales/GetDailySales"},
}

func main() {
	var (
		base    string
		timeout time.Duration
		only    string
	)

	flag.StringVar(&base, "base", "http://localhost:5000/api", "Institute backend base URL")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.StringVar(&only, "only", "", "Comma-separated entity names to probe (default all)")
	flag.Parse()

	probes := defaultProbes
	if only != "" {
		wanted := map[string]bool{}
		for _, name := range strings.Split(only, ",") {
			wanted[strings.TrimSpace(name)] = true
		}
		filtered := probes[:0]
		for _, p := range probes {
			if wanted[p.Entity] {
				filtered = append(filtered, p)
			}
		}
		probes = filtered
	}

	client := &http.Client{Timeout: timeout}
	failures := 0

	fmt.Println("Backend Probe Report")
	fmt.Println("====================")
	for _, p := range probes {
		res := run(client, base, p)
		status := "OK"
		if res.Error != nil || res.Status >= http.StatusBadRequest {
			status = "FAIL"
			failures++
		}
		fmt.Printf("[%s] %s\n", status, p.Entity)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Status: %d | Records: %d | Latency: %s\n", res.Status, res.Count, res.Duration)
	}

	fmt.Printf("Probed %d endpoints, %d failing\n", len(probes), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func run(client *http.Client, base string, p probe) result {
	res := result{Probe: p}
	url := strings.TrimRight(base, "/") + "/" + p.Path

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		res.Error = err
		return res
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Error = fmt.Errorf("read body: %w", err)
		return res
	}
	res.Count = recordCount(body)
	return res
}

// recordCount handles both response conventions: a bare JSON array and an
// envelope with the collection under data.
func recordCount(body []byte) int {
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil {
		return len(list)
	}
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		return len(envelope.Data)
	}
	return 0
}
