package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type AgentConfig struct {
	ID           int
	Name         string
	Budget       time.Duration
	Playouts     int
	PlayoutDepth int
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing game.First
	Agent2 int // AgentConfig.ID playing game.Second
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type DecisionRecord struct {
	Game  int // GameRecord.ID
	Agent int // AgentConfig.ID
	DecisionMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a folder for the experiment, named by the current time,
// under baseDir.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	dir := filepath.Join(baseDir, name, timestamp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: dir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "budget", "playouts", "playout_depth"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Budget.String(),
			strconv.Itoa(config.Playouts),
			strconv.Itoa(config.PlayoutDepth),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "game", "agent1", "agent2", "starting_player", "winners", "finished", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		winners := make([]string, len(record.Winners))
		for i, winner := range record.Winners {
			winners[i] = strconv.Itoa(winner)
		}
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Game,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			strings.Join(winners, ";"),
			strconv.FormatBool(record.Finished),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "agent", "move", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Agent,
			record.Move,
			record.Duration.String(),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"game", "agent", "step", "depth", "elapsed_ms", "score", "nodes", "playouts", "full_playouts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Depth),
			strconv.FormatInt(record.Elapsed.Milliseconds(), 10),
			strconv.FormatFloat(record.Score, 'f', 4, 64),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Playouts, 10),
			strconv.FormatInt(record.FullPlayouts, 10),
		})
	}
	return w.write("decision_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
