package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook là một hook để ghi log bất đồng bộ, tránh blocking request handling.
// Hook buffer log entries và ghi chúng vào các writers trong một goroutine riêng.
type AsyncHook struct {
	writers    []io.Writer // Danh sách các writers (file, stdout, ...)
	entries    chan *logrus.Entry
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	bufferSize int
}

// NewAsyncHookWithWriters tạo một async hook mới với nhiều writers.
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers:    writers,
		entries:    make(chan *logrus.Entry, bufferSize),
		bufferSize: bufferSize,
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire được gọi mỗi khi có log entry mới.
// Hàm này không block: chỉ đưa entry vào channel, channel đầy thì bỏ qua entry.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()

	if closed {
		// Hook đã đóng, ghi trực tiếp vào các writers (fallback)
		data, err := h.format(entry)
		if err != nil {
			return err
		}
		for _, writer := range h.writers {
			_, _ = writer.Write(data)
		}
		return nil
	}

	select {
	case h.entries <- entry:
	default:
		// Channel đầy, bỏ qua entry này để không block request handling
	}

	return nil
}

// format chuyển entry thành bytes bằng formatter của logger
func (h *AsyncHook) format(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// processEntries xử lý log entries trong một goroutine riêng.
// Có recover để panic trong logger không làm crash server.
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây vì sẽ tạo vòng lặp, ghi thẳng stderr
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()

			data, err := h.format(entry)
			if err != nil {
				return
			}

			for _, writer := range h.writers {
				if _, err := writer.Write(data); err != nil {
					// Không log được lỗi ở đây, tiếp tục với writer tiếp theo
					continue
				}
			}
		}()
	}
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
	return nil
}
