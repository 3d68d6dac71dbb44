package menu

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MemoryReadout samples /proc/meminfo for the menubar's logo-mode
// right-side readout, reproducing menuaddon_memory.c (SPEC_FULL.md §12).
func MemoryReadout() (string, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return "", err
	}
	defer f.Close()

	var totalKB, availKB int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			totalKB, _ = strconv.ParseInt(fields[1], 10, 64)
		case "MemAvailable:":
			availKB, _ = strconv.ParseInt(fields[1], 10, 64)
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if totalKB == 0 {
		return "", fmt.Errorf("menu.MemoryReadout: MemTotal not found")
	}
	usedMB := (totalKB - availKB) / 1024
	totalMB := totalKB / 1024
	return fmt.Sprintf("%d/%d MB", usedMB, totalMB), nil
}
