// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Decoding utility, reads quadrature CSV rows from stdin.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aamcrae/quadrature/decoder"
	"github.com/aamcrae/quadrature/quad"
)

var decodeCmd = &cobra.Command{
	Use:   "quaddecode",
	Short: "decode quadrature rows into angles",
	Long: `quaddecode reads rows of A,B,Index (1 axis) or A1,B1,A2,B2,Index (2 axes)
from stdin, as written by 'quadsim run', and prints the decoded position of
each axis. Trailing columns are ignored. With 2 axes the shared index resets
both decoders.`,
	Example: `  quadsim run --count 6400 | quaddecode --axes 2 --cpr 4096`,
	RunE:    decode,
}

func init() {
	f := decodeCmd.Flags()
	f.Int("axes", quad.DefaultAxes, "number of axes in each row (1 or 2)")
	f.Int("cpr", quad.DefaultCPR, "cycles per revolution")
	f.Bool("quiet", false, "only print the final position")
}

func main() {
	if err := decodeCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func decode(cmd *cobra.Command, args []string) error {
	axes, _ := cmd.Flags().GetInt("axes")
	cpr, _ := cmd.Flags().GetInt("cpr")
	quiet, _ := cmd.Flags().GetBool("quiet")
	if axes != 1 && axes != 2 {
		return fmt.Errorf("axes: %d is not 1 or 2", axes)
	}
	dec := []*decoder.Decoder{decoder.New(cpr), decoder.New(cpr)}[:axes]
	scanner := bufio.NewScanner(os.Stdin)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := decoder.ParseCSV(text, axes)
		if err != nil {
			log.Warnf("line %d: %v", line, err)
			continue
		}
		index := v[len(v)-1]
		for i, d := range dec {
			d.Sample(v[i*2], v[i*2+1], index)
		}
		if !quiet {
			fmt.Println(position(dec))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Println(position(dec))
	for i, d := range dec {
		if d.Errors() != 0 {
			log.Warnf("axis %d: %d illegal transitions", i+1, d.Errors())
		}
	}
	return nil
}

func position(dec []*decoder.Decoder) string {
	var s []string
	for _, d := range dec {
		s = append(s, fmt.Sprintf("%d,%.4f", d.Count(), d.Angle()))
	}
	return strings.Join(s, ",")
}
