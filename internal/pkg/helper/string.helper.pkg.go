package helper

import (
	"strconv"
	"strings"
)

func StringToInt64(payload string) (int64, error) {
	result, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return 0, err
	}

	return result, nil
}

// StringToRupiah parses "Rp 102.000", "Rp.102.000" or "102000".
func StringToRupiah(payload string) (int64, error) {
	payload = strings.TrimSpace(payload)
	payload = strings.TrimPrefix(payload, "Rp.")
	payload = strings.TrimPrefix(payload, "Rp ")
	payload = strings.TrimPrefix(payload, "Rp")
	payload = strings.ReplaceAll(payload, ".", "")
	return StringToInt64(payload)
}

func ParseCommaSeperatedString(data string) []string {
	var stringsList []string
	if data == "" {
		return stringsList
	}

	parts := strings.Split(data, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		stringsList = append(stringsList, part)
	}

	return stringsList
}
