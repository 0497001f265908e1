/*
Package chatroom contains the core logic for chat rooms: participant tracking,
the ordered message history, and the encode-on-send / decode-on-receive message
pipeline.

This file implements history persistence: writing a room's history to a
line-oriented text file and reading one back for replay.
*/
package chatroom

import (
	"bufio"
	"fmt"
	"os"
)

// SaveHistory writes each history entry as one line to path, overwriting any
// existing file. The history is snapshotted up front so no room lock is held
// during file IO.
func (r *Room) SaveHistory(path string) error {
	entries := r.History()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return fmt.Errorf("write history entry: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush history file: %w", err)
	}

	return nil
}

// LoadHistory reads a history file line by line and returns the lines for
// display. The loaded lines are NOT merged into the room's in-memory history;
// replay is display-only. A missing or unreadable file is reported as an error.
func (r *Room) LoadHistory(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	var lines []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	return lines, nil
}
