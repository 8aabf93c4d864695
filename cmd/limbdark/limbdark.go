package main

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/abworrall/limbdark/pkg/limb"
	"github.com/abworrall/limbdark/pkg/limbio"
)

var(
	fConfig string
	fVerbosity int
	fDetector string
	fThreshold int
	fSlices int
	fSampler string
	fCleanM float64
	fInnerRegion float64
	fAggregation string
	fModel string
	fDegree int
	fReferenceModel string
	fBias int
	fFlatSource string
	fWorkers int
	fOperation string
	fPlotCorrection bool
	fDebug bool
	fOutDir string
	fSeparateDir bool
)

func init() {
	def := limb.NewConfig()

	flag.StringVar(&fConfig, "config", "", "yaml or json5 config file; flags given on the command line win")
	flag.IntVar(&fVerbosity, "v", def.Verbosity, "how verbose to get")

	flag.StringVar(&fDetector, "detector", def.Detector, "how to find the disk: builtin, or opencv (needs -tags gocv)")
	flag.IntVar(&fThreshold, "threshold", int(def.Threshold), "blurred brightness (0-255) at which a pixel is part of the disk")
	flag.IntVar(&fSlices, "slices", def.Slices, "number of radial slices to take through the disk")
	flag.StringVar(&fSampler, "sampler", def.Sampler, "how to take the slices: polar, or rotate (slices must be a multiple of 4)")
	flag.Float64Var(&fCleanM, "m", def.CleanM, "slices whose mean is this many MADs from the median are dropped")
	flag.Float64Var(&fInnerRegion, "inner", def.InnerRegion, "fraction of the radius used to estimate the centre brightness")
	flag.StringVar(&fAggregation, "agg", string(def.Aggregation), "how to combine the slices: median or mean")

	flag.StringVar(&fModel, "model", def.Model, "limb darkening model to fit: "+ListModels())
	flag.IntVar(&fDegree, "degree", def.Degree, "degree of the polynomial model")
	flag.StringVar(&fReferenceModel, "reference", def.ReferenceModel, "reference model to plot alongside the fit: "+ListReferenceModels())

	flag.IntVar(&fBias, "bias", int(def.Bias), "brightness (0-255) the flattened disk is scaled to")
	flag.StringVar(&fFlatSource, "flat", def.FlatSource, "what to flatten with: model, or profile")
	flag.IntVar(&fWorkers, "workers", def.Workers, "number of goroutines for sampling and correction")

	flag.StringVar(&fOperation, "op", def.Operation, "what to do: all, correct (just the image) or model (just the plot)")
	flag.BoolVar(&fPlotCorrection, "plotcorrection", def.PlotCorrection, "profile the corrected image too, to see how flat it came out")
	flag.BoolVar(&fDebug, "debug", def.Debug, "write out debug images")
	flag.StringVar(&fOutDir, "o", def.OutDir, "dir to write output files into")
	flag.BoolVar(&fSeparateDir, "separate", def.SeparateDir, "one output subdir per input image")
}

func main() {
	flag.Parse()
	log.Printf("limbdark starting\n")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	files, err := limbio.ExpandArgs(flag.Args()...)
	if err != nil {
		log.Fatal(err)
	} else if len(files) == 0 {
		log.Fatal("no images to work on; give some files or dirs as args")
	}

	for _, filename := range files {
		if err := process(cfg, filename); err != nil {
			log.Fatal(err)
		}
	}
}

// loadConfig starts from the defaults (or the config file), then
// applies any flags that were given explicitly.
func loadConfig() (limb.Config, error) {
	cfg := limb.NewConfig()
	if fConfig != "" {
		var err error
		if cfg, err = limb.LoadConfig(fConfig); err != nil {
			return cfg, err
		}
		log.Printf("Loaded base configuration from %s\n", fConfig)
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		if err == nil {
			err = applyFlag(&cfg, f.Name)
		}
	})
	if err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if _, err := GetModel(cfg.Model); err != nil {
		return cfg, err
	}
	if cfg.ReferenceModel != "" {
		if _, _, err := GetReferenceModel(cfg.ReferenceModel); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func applyFlag(cfg *limb.Config, name string) error {
	switch name {
	case "v":              cfg.Verbosity = fVerbosity
	case "detector":       cfg.Detector = fDetector
	case "threshold":
		if fThreshold < 0 || fThreshold > 255 {
			return fmt.Errorf("-threshold %d not in [0,255]: %w", fThreshold, limb.ErrInvalidArgument)
		}
		cfg.Threshold = uint8(fThreshold)
	case "slices":         cfg.Slices = fSlices
	case "sampler":        cfg.Sampler = fSampler
	case "m":              cfg.CleanM = fCleanM
	case "inner":          cfg.InnerRegion = fInnerRegion
	case "agg":            cfg.Aggregation = limb.Aggregation(fAggregation)
	case "model":          cfg.Model = fModel
	case "degree":         cfg.Degree = fDegree
	case "reference":      cfg.ReferenceModel = fReferenceModel
	case "bias":
		if fBias < 0 || fBias > 255 {
			return fmt.Errorf("-bias %d not in [0,255]: %w", fBias, limb.ErrInvalidArgument)
		}
		cfg.Bias = uint8(fBias)
	case "flat":           cfg.FlatSource = fFlatSource
	case "workers":        cfg.Workers = fWorkers
	case "op":             cfg.Operation = fOperation
	case "plotcorrection": cfg.PlotCorrection = fPlotCorrection
	case "debug":          cfg.Debug = fDebug
	case "o":              cfg.OutDir = fOutDir
	case "separate":       cfg.SeparateDir = fSeparateDir
	}
	return nil
}

// process runs one image through the whole thing, and writes out
// whatever the operation asks for.
func process(cfg limb.Config, filename string) error {
	frame, err := limbio.Load(filename)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s, %s (%s)\n", filename, frame.Gray.Bounds().Size(), frame.Meta)

	model, err := GetModel(cfg.Model)
	if err != nil {
		return err
	}

	a, err := limb.NewAnalysis(cfg, frame.Gray)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if err := a.Run(model); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if a.Verbosity > 0 {
		log.Printf("%s", a)
	}

	out := limbio.NewOutputs(cfg.OutDir, filename, cfg.SeparateDir)
	if err := out.Mkdir(); err != nil {
		return err
	}

	if a.Debug {
		if err := writeDebug(a, out); err != nil {
			return err
		}
	}

	var feedback *limb.Linear
	var feedbackProfile limb.Profile
	if a.Corrected != nil {
		if err := limbio.Save(out.Corrected(a.Bias), a.Corrected); err != nil {
			return err
		}
		logFlatness("before", a.Raster, a.Disk)
		logFlatness("after", a.Corrected, a.Disk)

		if a.PlotCorrection {
			if feedback, feedbackProfile, err = a.Feedback(); err != nil {
				return err
			}
		}
	}

	if a.Operation == "all" || a.Operation == "model" {
		title := filepath.Base(filename)
		if err := writePlot(a, title, out.Plot(), feedback, feedbackProfile); err != nil {
			return err
		}
	}

	return nil
}
