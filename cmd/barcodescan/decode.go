package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	rxinggo "github.com/ericlevine/rxinggo"
)

type decodeFlags struct {
	tryHarder    bool
	pure         bool
	alsoInverted bool
	formats      []string
	charset      string
	hintsFile    string
	json         bool
}

type decodeOutput struct {
	File     string                `json:"file"`
	Format   string                `json:"format"`
	Text     string                `json:"text"`
	NumBits  int                   `json:"num_bits"`
	Points   []rxinggo.ResultPoint `json:"points,omitempty"`
	Metadata map[string]string     `json:"metadata,omitempty"`
}

func (a *app) newDecodeCmd() *cobra.Command {
	var f decodeFlags
	cmd := &cobra.Command{
		Use:   "decode <image-file> [image-file...]",
		Short: "Detect and decode a barcode in each image file",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		return a.decode(cmd, args, f)
	})

	fl := cmd.Flags()
	fl.BoolVar(&f.tryHarder, "try-harder", false, "spend more time looking for barcodes")
	fl.BoolVar(&f.pure, "pure", false, "hint that the image is a clean barcode render with minimal border")
	fl.BoolVar(&f.alsoInverted, "also-inverted", false, "also look for light-on-dark barcodes")
	fl.StringSliceVar(&f.formats, "format", nil, "restrict decoding to these formats")
	fl.StringVar(&f.charset, "charset", "", "character set for byte-mode text")
	fl.StringVar(&f.hintsFile, "hints", "", "YAML file of decode hints")
	fl.BoolVar(&f.json, "json", false, "print results as JSON lines")
	return cmd
}

func (f decodeFlags) hints() map[string]interface{} {
	h := map[string]interface{}{}
	if f.tryHarder {
		h[rxinggo.HintTryHarder.String()] = true
	}
	if f.pure {
		h[rxinggo.HintPureBarcode.String()] = true
	}
	if f.alsoInverted {
		h[rxinggo.HintAlsoInverted.String()] = true
	}
	if len(f.formats) > 0 {
		h[rxinggo.HintPossibleFormats.String()] = f.formats
	}
	if f.charset != "" {
		h[rxinggo.HintCharacterSet.String()] = f.charset
	}
	return h
}

func (a *app) decode(cmd *cobra.Command, paths []string, f decodeFlags) error {
	layers, err := hintLayers(a.cfg.Decode.Hints, f.hintsFile)
	if err != nil {
		return err
	}
	table, err := rxinggo.BuildHints(mergeHints(append(layers, f.hints())...), rxinggo.DirectionDecode)
	if err != nil {
		return err
	}

	dec := rxinggo.NewDecoder(a.options()...)
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	failed := 0
	for _, path := range paths {
		res, err := decodeFile(dec, path, table)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %v\n", path, err)
			failed++
			continue
		}
		if f.json {
			if err := enc.Encode(decodeOutput{
				File:     path,
				Format:   res.Format.String(),
				Text:     res.Text,
				NumBits:  res.NumBits,
				Points:   res.Points,
				Metadata: res.MetadataStrings(),
			}); err != nil {
				return err
			}
			continue
		}
		if len(paths) > 1 {
			fmt.Fprintf(out, "%s: ", path)
		}
		fmt.Fprintf(out, "[%s] %s\n", res.Format, strings.TrimRight(res.Text, "\n"))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(paths))
	}
	return nil
}

func decodeFile(dec *rxinggo.Decoder, path string, hints *rxinggo.HintTable) (*rxinggo.Result, error) {
	src, err := rxinggo.FromFile(path)
	if err != nil {
		return nil, err
	}
	return dec.Decode(src, hints)
}
