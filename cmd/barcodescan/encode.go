package main

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	rxinggo "github.com/ericlevine/rxinggo"
)

type encodeFlags struct {
	format    string
	out       string
	width     int
	height    int
	scale     int
	margin    int
	ec        string
	version   int
	charset   string
	hintsFile string
}

func (a *app) newEncodeCmd() *cobra.Command {
	var f encodeFlags
	cmd := &cobra.Command{
		Use:   "encode <data>",
		Short: "Encode data as a barcode",
		Long: `Encode data as a barcode. Without --out the module grid is printed as text.
With --out the image format follows the file extension.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		return a.encode(cmd, args[0], f)
	})

	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", rxinggo.FormatQRCode.String(), "barcode format")
	fl.StringVarP(&f.out, "out", "o", "", "write the barcode image to this file")
	fl.IntVar(&f.width, "width", 0, "image width in pixels (default from config)")
	fl.IntVar(&f.height, "height", 0, "image height in pixels (default from config)")
	fl.IntVar(&f.scale, "scale", 0, "pixels per module when no size is given (default from config)")
	fl.IntVar(&f.margin, "margin", 0, "quiet zone in modules (default depends on format)")
	fl.StringVar(&f.ec, "ec", "", "error correction level (L, M, Q, H)")
	fl.IntVar(&f.version, "version", 0, "QR Code symbol version (1-40)")
	fl.StringVar(&f.charset, "charset", "", "character set used to encode the data")
	fl.StringVar(&f.hintsFile, "hints", "", "YAML file of encode hints")
	return cmd
}

func (f encodeFlags) hints(cmd *cobra.Command) map[string]interface{} {
	h := map[string]interface{}{}
	if cmd.Flags().Changed("margin") {
		h[rxinggo.HintMargin.String()] = f.margin
	}
	if f.ec != "" {
		h[rxinggo.HintErrorCorrection.String()] = f.ec
	}
	if f.version != 0 {
		h[rxinggo.HintSymbolVersion.String()] = f.version
	}
	if f.charset != "" {
		h[rxinggo.HintCharacterSet.String()] = f.charset
	}
	return h
}

func (a *app) encode(cmd *cobra.Command, data string, f encodeFlags) error {
	format, err := rxinggo.ParseFormat(f.format)
	if err != nil {
		return err
	}
	layers, err := hintLayers(a.cfg.Encode.Hints, f.hintsFile)
	if err != nil {
		return err
	}
	table, err := rxinggo.BuildHints(mergeHints(append(layers, f.hints(cmd))...), rxinggo.DirectionEncode)
	if err != nil {
		return err
	}

	width, height, scale := a.cfg.Encode.Width, a.cfg.Encode.Height, a.cfg.Encode.Scale
	if f.width > 0 {
		width = f.width
	}
	if f.height > 0 {
		height = f.height
	}
	if f.scale > 0 {
		scale = f.scale
	}

	bm, err := rxinggo.NewEncoder(a.options()...).Encode(data, format, width, height, table)
	if err != nil {
		return err
	}
	a.logger.Debug("encoded", "format", format, "modules", fmt.Sprintf("%dx%d", bm.Width(), bm.Height()))

	if f.out == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), bm.String())
		return err
	}
	if width == 0 && height == 0 {
		if err := imaging.Save(bm.ImageScaled(scale), f.out); err != nil {
			return fmt.Errorf("save %s: %w", f.out, err)
		}
	} else if err := bm.Save(f.out); err != nil {
		return err
	}
	a.logger.Info("wrote barcode", "file", f.out, "format", format)
	return nil
}
