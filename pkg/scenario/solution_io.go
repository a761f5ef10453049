package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/Carbonetx/pkg"
	"github.com/lintang-b-s/Carbonetx/pkg/engine/heuristic"
	"github.com/lintang-b-s/Carbonetx/pkg/util"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteSolution. bzip2 compressed text file: a summary line, the cost breakdown, the section sizes,
// then one line per source, sink and built pipeline. the iteration trace is not stored.
func WriteSolution(filename string, sol *heuristic.Solution) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	if err := EncodeSolution(bz, sol); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

func EncodeSolution(out io.Writer, sol *heuristic.Solution) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%s %s %s %d %d %d %s\n", sol.Status,
		formatFloat(sol.TargetCaptureAmount), formatFloat(sol.AmountCaptured), sol.Iterations,
		sol.NumOpenedSources, sol.NumOpenedSinks, formatFloat(sol.NetworkLength))

	c := sol.Costs
	fmt.Fprintf(w, "%s %s %s %s %s %s %s %s\n",
		formatFloat(c.Capture), formatFloat(c.Transport), formatFloat(c.Storage), formatFloat(c.Total),
		formatFloat(c.UnitCapture), formatFloat(c.UnitTransport), formatFloat(c.UnitStorage), formatFloat(c.UnitTotal))

	fmt.Fprintf(w, "%d %d %d\n", len(sol.Sources), len(sol.Sinks), len(sol.Pipelines))

	for _, src := range sol.Sources {
		fmt.Fprintf(w, "%s %d %t %s\n", strconv.Quote(src.Label), src.CellNum, src.Opened, formatFloat(src.Captured))
	}

	for _, snk := range sol.Sinks {
		fmt.Fprintf(w, "%s %d %t %s %d\n", strconv.Quote(snk.Label), snk.CellNum, snk.Opened,
			formatFloat(snk.Stored), snk.NumWells)
	}

	for _, p := range sol.Pipelines {
		fmt.Fprintf(w, "%s %d %d %d %s %s %s %s %s\n", strconv.Quote(p.Polyline), p.FromCell, p.ToCell, p.Size,
			formatFloat(p.Flow), formatFloat(p.Capacity), formatFloat(p.BuildCost), formatFloat(p.TransportCost),
			formatFloat(p.Length))
	}

	return w.Flush()
}

func ReadSolution(filename string) (*heuristic.Solution, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	return DecodeSolution(bz)
}

func DecodeSolution(in io.Reader) (*heuristic.Solution, error) {
	br := bufio.NewReader(in)
	sol := &heuristic.Solution{}

	tokens, err := readTokens(br, 7)
	if err != nil {
		return nil, err
	}
	sol.Status = pkg.SolutionStatus(tokens[0])
	floats, err := parseFloats(tokens[1], tokens[2], tokens[6])
	if err != nil {
		return nil, err
	}
	sol.TargetCaptureAmount, sol.AmountCaptured, sol.NetworkLength = floats[0], floats[1], floats[2]
	ints, err := parseInts(tokens[3], tokens[4], tokens[5])
	if err != nil {
		return nil, err
	}
	sol.Iterations, sol.NumOpenedSources, sol.NumOpenedSinks = ints[0], ints[1], ints[2]

	tokens, err = readTokens(br, 8)
	if err != nil {
		return nil, err
	}
	costs, err := parseFloats(tokens...)
	if err != nil {
		return nil, err
	}
	sol.Costs = heuristic.CostBreakdown{
		Capture:       costs[0],
		Transport:     costs[1],
		Storage:       costs[2],
		Total:         costs[3],
		UnitCapture:   costs[4],
		UnitTransport: costs[5],
		UnitStorage:   costs[6],
		UnitTotal:     costs[7],
	}

	tokens, err = readTokens(br, 3)
	if err != nil {
		return nil, err
	}
	sizes, err := parseInts(tokens...)
	if err != nil {
		return nil, err
	}

	sol.Sources = make([]heuristic.SourceAllocation, sizes[0])
	for i := range sol.Sources {
		label, tokens, err := readQuotedLine(br, 3)
		if err != nil {
			return nil, err
		}
		cell, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, err
		}
		opened, err := strconv.ParseBool(tokens[1])
		if err != nil {
			return nil, err
		}
		captured, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return nil, err
		}
		sol.Sources[i] = heuristic.SourceAllocation{Label: label, CellNum: cell, Opened: opened, Captured: captured}
	}

	sol.Sinks = make([]heuristic.SinkAllocation, sizes[1])
	for i := range sol.Sinks {
		label, tokens, err := readQuotedLine(br, 4)
		if err != nil {
			return nil, err
		}
		cell, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, err
		}
		opened, err := strconv.ParseBool(tokens[1])
		if err != nil {
			return nil, err
		}
		stored, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return nil, err
		}
		numWells, err := strconv.Atoi(tokens[3])
		if err != nil {
			return nil, err
		}
		sol.Sinks[i] = heuristic.SinkAllocation{Label: label, CellNum: cell, Opened: opened, Stored: stored,
			NumWells: numWells}
	}

	sol.Pipelines = make([]heuristic.PipelineFlow, sizes[2])
	for i := range sol.Pipelines {
		encoded, tokens, err := readQuotedLine(br, 8)
		if err != nil {
			return nil, err
		}
		from, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, err
		}
		to, err := strconv.ParseInt(tokens[1], 10, 64)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(tokens[2])
		if err != nil {
			return nil, err
		}
		vals, err := parseFloats(tokens[3:]...)
		if err != nil {
			return nil, err
		}
		sol.Pipelines[i] = heuristic.PipelineFlow{
			FromCell:      from,
			ToCell:        to,
			Size:          size,
			Flow:          vals[0],
			Capacity:      vals[1],
			BuildCost:     vals[2],
			TransportCost: vals[3],
			Length:        vals[4],
			Polyline:      encoded,
		}
	}

	return sol, nil
}

func readTokens(br *bufio.Reader, want int) ([]string, error) {
	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := strings.Fields(line)
	if len(tokens) != want {
		return nil, fmt.Errorf("expected %d fields, got %d", want, len(tokens))
	}
	return tokens, nil
}

// readQuotedLine. line starting with a quoted string followed by want plain fields
func readQuotedLine(br *bufio.Reader, want int) (string, []string, error) {
	line, err := util.ReadLine(br)
	if err != nil {
		return "", nil, err
	}
	quoted, err := strconv.QuotedPrefix(line)
	if err != nil {
		return "", nil, err
	}
	s, err := strconv.Unquote(quoted)
	if err != nil {
		return "", nil, err
	}
	tokens := strings.Fields(line[len(quoted):])
	if len(tokens) != want {
		return "", nil, fmt.Errorf("expected %d fields after %s, got %d", want, quoted, len(tokens))
	}
	return s, tokens, nil
}

func parseFloats(tokens ...string) ([]float64, error) {
	vals := make([]float64, len(tokens))
	for i, t := range tokens {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func parseInts(tokens ...string) ([]int, error) {
	vals := make([]int, len(tokens))
	for i, t := range tokens {
		v, err := strconv.Atoi(t)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
