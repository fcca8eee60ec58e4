package train

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/synap-ml/synap/internal/config"
	"github.com/synap-ml/synap/internal/nn"
	"github.com/synap-ml/synap/internal/optim"
)

// Model is what the trainer needs from a network: forward/backward,
// parameter enumeration with a structural final layer, and state export.
type Model interface {
	nn.Classifier
	nn.StateDicter
}

// Trainer drives epochs over a model and a group-wise SGD optimizer.
type Trainer struct {
	model     Model
	opt       *optim.SGD
	criterion *nn.CrossEntropyLoss
	cfg       *config.Config
	ctx       *TrainingContext

	// ProgressOutput receives the per-epoch progress bar. Defaults to
	// stderr; tests set io.Discard.
	ProgressOutput io.Writer
}

// NewTrainer creates a trainer with a fresh TrainingContext.
//
// The run starts at cfg.StartEpoch (manual restarts); Resume overrides it
// with the checkpoint's epoch.
func NewTrainer(model Model, opt *optim.SGD, cfg *config.Config) *Trainer {
	ctx := NewTrainingContext()
	ctx.StartEpoch = cfg.StartEpoch
	return &Trainer{
		model:          model,
		opt:            opt,
		criterion:      nn.NewCrossEntropyLoss(),
		cfg:            cfg,
		ctx:            ctx,
		ProgressOutput: os.Stderr,
	}
}

// Context returns the run's training context.
func (t *Trainer) Context() *TrainingContext {
	return t.ctx
}

// Resume restores model and optimizer state from a checkpoint and positions
// the run at the checkpoint's next epoch.
func (t *Trainer) Resume(path string) error {
	ckpt, err := nn.LoadCheckpoint(path, t.model, t.opt)
	if err != nil {
		return err
	}
	t.ctx.StartEpoch = ckpt.Epoch
	t.ctx.Step = ckpt.Step
	t.ctx.BestPrec1 = ckpt.BestPrec1
	t.ctx.RunID = ckpt.RunID
	klog.Infof("resumed from %s (epoch %d, best prec@1 %.3f)", path, ckpt.Epoch, ckpt.BestPrec1)
	return nil
}

// Run executes the training loop, or a single validation pass in evaluate
// mode.
func (t *Trainer) Run(trainDS, valDS Dataset) error {
	if t.cfg.Evaluate {
		t.validate(valDS)
		return nil
	}

	for epoch := t.ctx.StartEpoch; epoch < t.cfg.Epochs; epoch++ {
		t.ctx.Epoch = epoch
		t.opt.SetEpoch(epoch)

		if err := t.trainEpoch(epoch, trainDS); err != nil {
			return err
		}

		prec1 := t.validate(valDS)
		isBest := prec1 > t.ctx.BestPrec1
		if isBest {
			t.ctx.BestPrec1 = prec1
		}

		if err := t.saveCheckpoint(epoch, isBest); err != nil {
			return err
		}
	}
	return nil
}

// trainEpoch runs one pass over the training set, updating parameters once
// per batch.
func (t *Trainer) trainEpoch(epoch int, ds Dataset) error {
	var batchTime, dataTime, losses, top1, top5 AverageMeter

	bar := progressbar.NewOptions(ds.Len(),
		progressbar.OptionSetDescription(fmt.Sprintf("epoch %d", epoch)),
		progressbar.OptionSetWriter(t.ProgressOutput),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	defer close(done)

	end := time.Now()
	i := 0
	for batch := range prefetch(ds, 2, done) {
		dataTime.Update(time.Since(end).Seconds(), 1)

		n := len(batch.Labels)
		t.opt.ZeroGrad()
		logits := t.model.Forward(batch.Input)
		loss := t.criterion.Forward(logits, batch.Labels)
		accs := Accuracy(logits, batch.Labels, 1, 5)

		losses.Update(loss, n)
		top1.Update(accs[0], n)
		top5.Update(accs[1], n)

		t.model.Backward(t.criterion.Backward())
		// The step must finish for every parameter before the next
		// forward pass; StepGrads returns only when it has.
		if err := t.opt.StepGrads(); err != nil {
			return err
		}
		t.ctx.Step++

		batchTime.Update(time.Since(end).Seconds(), 1)
		end = time.Now()
		_ = bar.Add(1)

		if t.cfg.PrintFreq > 0 && i%t.cfg.PrintFreq == 0 {
			klog.Infof("epoch [%d][%d/%d] time %.3f (%.3f) data %.3f (%.3f) loss %.4f (%.4f) prec@1 %.3f (%.3f) prec@5 %.3f (%.3f)",
				epoch, i, ds.Len(),
				batchTime.Val, batchTime.Avg, dataTime.Val, dataTime.Avg,
				losses.Val, losses.Avg, top1.Val, top1.Avg, top5.Val, top5.Avg)
		}
		i++
	}
	_ = bar.Finish()

	t.ctx.Loss = losses.Avg
	return nil
}

// validate runs one pass over the validation set and returns mean prec@1.
func (t *Trainer) validate(ds Dataset) float64 {
	var losses, top1, top5 AverageMeter

	done := make(chan struct{})
	defer close(done)

	for batch := range prefetch(ds, 2, done) {
		n := len(batch.Labels)
		logits := t.model.Forward(batch.Input)
		loss := t.criterion.Forward(logits, batch.Labels)
		accs := Accuracy(logits, batch.Labels, 1, 5)

		losses.Update(loss, n)
		top1.Update(accs[0], n)
		top5.Update(accs[1], n)
	}

	klog.Infof(" * prec@1 %.3f prec@5 %.3f loss %.4f", top1.Avg, top5.Avg, losses.Avg)
	return top1.Avg
}

// saveCheckpoint writes checkpoint.synap, copies it to model_best.synap when
// the epoch produced a new best, and to epochNNN.synap per the configured
// cadence.
func (t *Trainer) saveCheckpoint(epoch int, isBest bool) error {
	ckpt := &nn.Checkpoint{
		Model:     t.model,
		Optimizer: t.opt,
		Epoch:     epoch + 1,
		Step:      t.ctx.Step,
		BestPrec1: t.ctx.BestPrec1,
		Loss:      t.ctx.Loss,
		Arch:      t.cfg.Arch,
		RunID:     t.ctx.RunID,
	}

	path := filepath.Join(t.cfg.Prefix, "checkpoint.synap")
	if err := ckpt.Save(path); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		klog.V(1).Infof("wrote %s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}

	if isBest {
		if err := copyFile(path, filepath.Join(t.cfg.Prefix, "model_best.synap")); err != nil {
			return err
		}
	}
	if t.cfg.SaveEveryEpoch || (t.cfg.SaveEveryNEpochs > 0 && epoch%t.cfg.SaveEveryNEpochs == 0) {
		if err := copyFile(path, filepath.Join(t.cfg.Prefix, fmt.Sprintf("epoch%03d.synap", epoch))); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
