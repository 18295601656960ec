// utils/tr_code.go
package utils

import (
	"fmt"
	"time"
)

// GenDocCode untuk dokumen bernomor urut per tahun, mis. PO-2026-000001.
func GenDocCode(prefix string, seq int64, t time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, t.Year(), seq)
}

// GenOrderNumber menggabungkan jumlah order dan timestamp, mis. ORD-20261015143005-000124.
// Keunikan tidak dijamin; unique index di DB yang jadi penjaga terakhir.
func GenOrderNumber(seq int64, t time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", t.Format("20060102150405"), seq)
}
