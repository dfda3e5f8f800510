package edf2cfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/amiyapatanaik/edf2cfs/decode"
)

// JobParams are the per-job parameters controlled by the CLI harness
// (spec §4.6, §6.2).
type JobParams struct {
	Selection ChannelSelection
	Overwrite bool // -o
	InMemory  bool
}

// JobResult is the structured, per-file outcome the dispatcher
// aggregates across a batch (spec §4.7): either a success with the
// written path and epoch count, or a typed failure. It never
// terminates the process.
type JobResult struct {
	Path        string
	OutputPath  string
	Epochs      int
	StartTime   time.Time
	JulianDay   float64
	Diagnostics []string
	Err         error
}

// cfsPath derives the output path for an input EDF path: the input
// stem preserved, extension replaced with .cfs (spec §6.2).
func cfsPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".cfs"
}

// classifyOpenError maps the stdlib errors decode.Open can surface
// onto the EdfOpenKind taxonomy of spec §7.
func classifyOpenError(err error) EdfOpenKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return EdfOpenMissingFile
	case errors.Is(err, syscall.EMFILE), errors.Is(err, syscall.ENFILE):
		return EdfOpenTooManyOpen
	case errors.Is(err, fs.ErrPermission):
		return EdfOpenReadError
	default:
		return EdfOpenMalformedHeader
	}
}

// RunJob executes the full per-file conversion pipeline (spec §4):
// channel resolution, unit normalisation, FIR filtering, resampling,
// STFT feature extraction, hashing, compression, and atomic CFS
// write. Every stage is sequential and runs straight through on one
// thread (spec §5); the only suspension points are the blocking EDF
// read and the destination write.
func RunJob(path string, params JobParams) JobResult {
	out := cfsPath(path)
	result := JobResult{Path: path, OutputPath: out}

	if !params.Overwrite {
		if _, err := os.Stat(out); err == nil {
			result.Err = NewJobError(ErrAlreadyConverted)
			return result
		}
	}

	src, err := decode.Open(path, params.InMemory)
	if err != nil {
		result.Err = EdfOpenFailure(path, classifyOpenError(err), err)
		return result
	}
	defer src.Close()
	result.Diagnostics = append(result.Diagnostics, "opened "+path)

	if start, jd, terr := decode.StartTime(src.Header); terr == nil {
		result.StartTime = start
		result.JulianDay = jd
	}

	resolved, err := ResolveChannels(params.Selection, src.Signals)
	if err != nil {
		result.Err = err
		return result
	}
	result.Diagnostics = append(result.Diagnostics, "resolved channels")

	c3, err := ExtractMicrovolts(src, resolved.C3, string(RoleC3))
	if err != nil {
		result.Err = err
		return result
	}
	c4, err := ExtractMicrovolts(src, resolved.C4, string(RoleC4))
	if err != nil {
		result.Err = err
		return result
	}
	el, err := ExtractMicrovolts(src, resolved.EL, string(RoleEL))
	if err != nil {
		result.Err = err
		return result
	}
	er, err := ExtractMicrovolts(src, resolved.ER, string(RoleER))
	if err != nil {
		result.Err = err
		return result
	}
	result.Diagnostics = append(result.Diagnostics, "extracted raw channels")

	eegFiltered := FilterEEG(c3, c4, resolved.C3.Rate)
	elFiltered := FilterEOG(el, resolved.EL.Rate)
	erFiltered := FilterEOG(er, resolved.ER.Rate)
	result.Diagnostics = append(result.Diagnostics, "band-pass filtered")

	eegResampled := Resample(eegFiltered, resolved.C3.Rate, TargetRate)
	elResampled := Resample(elFiltered, resolved.EL.Rate, TargetRate)
	erResampled := Resample(erFiltered, resolved.ER.Rate, TargetRate)
	result.Diagnostics = append(result.Diagnostics, "resampled to 100Hz")

	tensor := ExtractFeatures(eegResampled, elResampled, erResampled)
	result.Epochs = tensor.Epochs
	result.Diagnostics = append(result.Diagnostics, "extracted features")

	if werr := WriteCFS(out, tensor); werr != nil {
		result.Err = werr
		return result
	}
	result.Diagnostics = append(result.Diagnostics, "wrote "+out)

	return result
}
