package main

import(
	"image"
	"log"

	"github.com/abworrall/limbdark/pkg/limb"
	"github.com/abworrall/limbdark/pkg/limbio"
	"github.com/abworrall/limbdark/pkg/plotting"
)

// Debug images of the whole frame get shrunk down to this
const debugThumbnailSize = 1600

func writeDebug(a *limb.Analysis, out limbio.Outputs) error {
	overlay := limbio.Thumbnail(limb.DrawDiskOverlay(a.Raster, a.Disk), debugThumbnailSize)
	if err := limbio.Save(out.Debug("disk.jpg"), overlay); err != nil {
		return err
	}

	log.Printf("Stack %s, %d slices dropped; clean %s\n", a.Stack.Stats(), a.Dropped(), a.CleanStack.Stats())

	images := map[string]image.Image{
		"stack.png":         limb.StackImage(a.Stack, a.Disk.R - 1),
		"stack_clean.png":   a.CleanStack.ToImg(a.CleanStack.String()),
		"stack_heatmap.png": a.CleanStack.Heatmap(),
	}
	for name, img := range images {
		if err := limbio.Save(out.Debug(name), img); err != nil {
			return err
		}
	}

	flat, err := a.FlatField()
	if err != nil {
		return err
	}
	fi, err := limb.NewFlatFieldImage(a.Disk, flat)
	if err != nil {
		return err
	}
	filename := out.Debug("flatfield.hdr")
	if err := fi.WriteToHDR(filename); err != nil {
		return err
	}
	log.Printf("Wrote %s\n", filename)

	return nil
}

// writePlot draws the profile and the fitted model, plus the reference
// model and the corrected image's profile if there are any.
func writePlot(a *limb.Analysis, title, filename string, feedback *limb.Linear, feedbackProfile limb.Profile) error {
	pl := plotting.New(title)

	if err := pl.PlotProfile("profile", a.Profile); err != nil {
		return err
	}
	if err := pl.PlotModel(a.LimbModel.Name(), a.LimbModel, false); err != nil {
		return err
	}

	if a.ReferenceModel != "" {
		ref, label, err := GetReferenceModel(a.ReferenceModel)
		if err != nil {
			return err
		}
		if err := pl.PlotModel(label, ref, true); err != nil {
			return err
		}
	}

	if feedback != nil {
		if err := pl.PlotProfile("corrected profile", feedbackProfile); err != nil {
			return err
		}
		if err := pl.PlotModel("linearity of correction", feedback, true); err != nil {
			return err
		}
	}

	return pl.Save(filename)
}

func logFlatness(when string, img image.Image, d limb.Disk) {
	f, err := limb.MeasureFlatness(img, d)
	if err != nil {
		log.Printf("Flatness %s correction: %v\n", when, err)
		return
	}
	log.Printf("Flatness %s correction: %s\n", when, f)
}
