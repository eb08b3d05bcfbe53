package main

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// hostSummary describes the machine bench numbers were taken on. Fields the
// platform cannot report are left out.
func hostSummary() string {
	parts := make([]string, 0, 3)

	if info, err := cpu.Info(); err == nil && len(info) > 0 && info[0].ModelName != "" {
		parts = append(parts, strings.TrimSpace(info[0].ModelName))
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		parts = append(parts, fmt.Sprintf("%d threads", n))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		parts = append(parts, fmt.Sprintf("%.1f GiB RAM", float64(vm.Total)/(1<<30)))
	}

	if len(parts) == 0 {
		return "host: unknown"
	}
	return "host: " + strings.Join(parts, ", ")
}
