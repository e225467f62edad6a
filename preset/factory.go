package preset

import "github.com/cwbudde/algo-growl/growl"

type factoryRow struct {
	animal     string
	name       string
	category   Category
	sizeFeet   float32
	noise      growl.NoiseKind
	oscillator growl.OscillatorKind
	formants   [growl.NumFormants]float32
	distortion growl.DistortionKind
	drive      float32
	resMix     float32
}

// factoryRows is the factory bank in program order. Fields not listed take
// their value from growl.NewDefaultParams.
var factoryRows = [...]factoryRow{
	// Big cats
	{"Lion", "Lion Roar", CategoryBigCats, 9, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{200, 440, 800, 1500, 2500}, growl.DistortionSoftClip, 2, 0.7},
	{"Tiger", "Tiger Growl", CategoryBigCats, 10, growl.NoisePink, growl.OscillatorDPW, [growl.NumFormants]float32{180, 420, 780, 1400, 2400}, growl.DistortionWaveshape, 3, 0.6},
	{"Leopard", "Leopard Snarl", CategoryBigCats, 7, growl.NoiseBandpass, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{250, 500, 900, 1600, 2800}, growl.DistortionHarmonicBalancer, 2.5, 0.5},
	{"Jaguar", "Jaguar Growl", CategoryBigCats, 6.5, growl.NoiseBrown, growl.OscillatorWavetable, [growl.NumFormants]float32{220, 480, 860, 1500, 2600}, growl.DistortionChebyshev, 2.8, 0.65},
	{"Cheetah", "Cheetah Chirp", CategoryBigCats, 5, growl.NoiseWhite, growl.OscillatorDetuned, [growl.NumFormants]float32{300, 550, 1000, 1800, 3000}, growl.DistortionSoftClip, 1.5, 0.8},
	{"Snow Leopard", "Snow Leopard", CategoryBigCats, 7.5, growl.NoisePink, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{200, 450, 850, 1500, 2500}, growl.DistortionWavefolder, 2.2, 0.6},
	{"Cougar", "Cougar Scream", CategoryBigCats, 8, growl.NoiseBandpass, growl.OscillatorDPW, [growl.NumFormants]float32{280, 520, 920, 1600, 2700}, growl.DistortionBitcrush, 2, 0.7},
	{"Liger", "Liger Roar", CategoryBigCats, 12, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{150, 350, 650, 1200, 2000}, growl.DistortionSoftClip, 3.5, 0.75},
	{"Bobcat", "Bobcat Growl", CategoryBigCats, 4, growl.NoisePink, growl.OscillatorWavetable, [growl.NumFormants]float32{350, 650, 1100, 1900, 3200}, growl.DistortionWaveshape, 1.8, 0.55},
	{"Panther", "Panther Purr", CategoryBigCats, 8.5, growl.NoiseBrown, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{180, 400, 750, 1300, 2300}, growl.DistortionSoftClip, 1.2, 0.9},

	// Canines
	{"Wolf", "Wolf Howl", CategoryCanines, 6, growl.NoisePink, growl.OscillatorDPW, [growl.NumFormants]float32{250, 500, 900, 1600, 2800}, growl.DistortionSoftClip, 1.5, 0.6},
	{"Dire Wolf", "Dire Wolf", CategoryCanines, 7, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{200, 420, 800, 1400, 2400}, growl.DistortionWaveshape, 2.5, 0.7},
	{"Fox", "Fox Bark", CategoryCanines, 3.5, growl.NoiseBandpass, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{400, 700, 1200, 2000, 3500}, growl.DistortionSoftClip, 1, 0.5},
	{"Coyote", "Coyote Howl", CategoryCanines, 4.5, growl.NoiseWhite, growl.OscillatorWavetable, [growl.NumFormants]float32{350, 650, 1100, 1900, 3200}, growl.DistortionHarmonicBalancer, 1.3, 0.55},
	{"Dingo", "Dingo Growl", CategoryCanines, 5, growl.NoisePink, growl.OscillatorDPW, [growl.NumFormants]float32{300, 580, 1000, 1800, 3000}, growl.DistortionSoftClip, 1.6, 0.6},
	{"African Wild Dog", "African Wild Dog", CategoryCanines, 5.5, growl.NoiseBandpass, growl.OscillatorDetuned, [growl.NumFormants]float32{320, 600, 1050, 1850, 3100}, growl.DistortionWaveshape, 1.7, 0.58},
	{"Hyena", "Hyena Laugh", CategoryCanines, 6.5, growl.NoisePinkMixed, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{280, 520, 920, 1600, 2700}, growl.DistortionChebyshev, 2, 0.65},
	{"Werewolf", "Werewolf Growl", CategoryCanines, 8, growl.NoiseBrown, growl.OscillatorDetuned, [growl.NumFormants]float32{150, 350, 650, 1200, 2000}, growl.DistortionWavefolder, 4, 0.8},
	{"Domestic Dog", "Dog Bark", CategoryCanines, 2.5, growl.NoiseWhite, growl.OscillatorWavetable, [growl.NumFormants]float32{450, 800, 1400, 2400, 4000}, growl.DistortionSoftClip, 0.8, 0.5},
	{"Gray Wolf", "Gray Wolf", CategoryCanines, 6.2, growl.NoisePink, growl.OscillatorDPW, [growl.NumFormants]float32{240, 480, 880, 1550, 2650}, growl.DistortionSoftClip, 1.7, 0.62},

	// Bears
	{"Grizzly Bear", "Grizzly Growl", CategoryBears, 10, growl.NoiseBrown, growl.OscillatorDetuned, [growl.NumFormants]float32{120, 280, 520, 950, 1600}, growl.DistortionWaveshape, 3, 0.8},
	{"Polar Bear", "Polar Bear Roar", CategoryBears, 10.5, growl.NoisePink, growl.OscillatorDPW, [growl.NumFormants]float32{110, 260, 500, 900, 1550}, growl.DistortionSoftClip, 2.8, 0.75},
	{"Kodiak Bear", "Kodiak Bear", CategoryBears, 11, growl.NoiseBrown, growl.OscillatorDetuned, [growl.NumFormants]float32{100, 250, 480, 880, 1500}, growl.DistortionWavefolder, 3.5, 0.85},
	{"Black Bear", "Black Bear", CategoryBears, 7, growl.NoisePink, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{150, 320, 600, 1100, 1900}, growl.DistortionSoftClip, 2.2, 0.65},
	{"Panda Bear", "Panda Bear", CategoryBears, 6, growl.NoiseBandpass, growl.OscillatorWavetable, [growl.NumFormants]float32{180, 350, 650, 1200, 2000}, growl.DistortionHarmonicBalancer, 1.5, 0.6},
	{"Sun Bear", "Sun Bear", CategoryBears, 5, growl.NoisePink, growl.OscillatorDPW, [growl.NumFormants]float32{200, 400, 750, 1350, 2300}, growl.DistortionSoftClip, 1.8, 0.58},
	{"Spectacled Bear", "Spectacled Bear", CategoryBears, 6.5, growl.NoiseBrown, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{170, 340, 620, 1150, 1950}, growl.DistortionWaveshape, 2, 0.62},
	{"Cave Bear", "Cave Bear", CategoryBears, 11.5, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{90, 220, 420, 780, 1300}, growl.DistortionChebyshev, 4, 0.9},
	{"Teddy Bear", "Teddy Bear", CategoryBears, 1, growl.NoiseWhite, growl.OscillatorWavetable, [growl.NumFormants]float32{500, 900, 1600, 2800, 4800}, growl.DistortionSoftClip, 0.5, 0.4},
	{"Brown Bear", "Brown Bear", CategoryBears, 9.5, growl.NoiseBrown, growl.OscillatorDPW, [growl.NumFormants]float32{115, 270, 500, 920, 1570}, growl.DistortionWaveshape, 2.9, 0.78},

	// Mythical
	{"Dragon", "Dragon Roar", CategoryMythical, 50, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{50, 120, 220, 400, 700}, growl.DistortionWavefolder, 5, 0.95},
	{"Werewolf", "Werewolf Howl", CategoryMythical, 8, growl.NoiseBrown, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{140, 320, 600, 1100, 1900}, growl.DistortionBitcrush, 3.5, 0.75},
	{"Kraken", "Kraken Scream", CategoryMythical, 100, growl.NoiseBandpass, growl.OscillatorDetuned, [growl.NumFormants]float32{30, 70, 130, 240, 420}, growl.DistortionChebyshev, 4.5, 0.85},
	{"Phoenix", "Phoenix Cry", CategoryMythical, 8, growl.NoisePink, growl.OscillatorWavetable, [growl.NumFormants]float32{400, 750, 1400, 2400, 4200}, growl.DistortionHarmonicBalancer, 2, 0.6},
	{"Griffin", "Griffin Screech", CategoryMythical, 10, growl.NoiseWhite, growl.OscillatorDPW, [growl.NumFormants]float32{350, 700, 1250, 2200, 3800}, growl.DistortionSoftClip, 2.5, 0.65},
	{"Chimera", "Chimera Roar", CategoryMythical, 12, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{100, 240, 450, 820, 1400}, growl.DistortionWaveshape, 4, 0.8},
	{"Yeti", "Yeti Growl", CategoryMythical, 9, growl.NoiseBrown, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{130, 300, 550, 1000, 1700}, growl.DistortionWavefolder, 3.2, 0.72},
	{"Basilisk", "Basilisk Hiss", CategoryMythical, 15, growl.NoiseBandpass, growl.OscillatorWavetable, [growl.NumFormants]float32{80, 180, 340, 620, 1100}, growl.DistortionSoftClip, 2.8, 0.7},
	{"Cerberus", "Cerberus Bark", CategoryMythical, 25, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{60, 140, 260, 480, 820}, growl.DistortionChebyshev, 4.8, 0.9},
	{"Hydra", "Hydra Roar", CategoryMythical, 30, growl.NoiseBrown, growl.OscillatorDetuned, [growl.NumFormants]float32{50, 110, 210, 380, 660}, growl.DistortionWavefolder, 5, 0.95},

	// Sci-fi
	{"Alien Creature", "Alien Growl", CategorySciFi, 7, growl.NoiseBandpass, growl.OscillatorWavetable, [growl.NumFormants]float32{300, 700, 1300, 2400, 4200}, growl.DistortionBitcrush, 2.5, 0.6},
	{"Robot", "Robot Voice", CategorySciFi, 6.5, growl.NoiseWhite, growl.OscillatorPolyBLEP, [growl.NumFormants]float32{250, 550, 1000, 1800, 3200}, growl.DistortionSoftClip, 1.5, 0.5},
	{"Cybernetic Wolf", "Cyber Wolf", CategorySciFi, 7.5, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{200, 420, 780, 1400, 2400}, growl.DistortionChebyshev, 3, 0.7},
	{"Mutant", "Mutant Beast", CategorySciFi, 8, growl.NoiseBrown, growl.OscillatorDetuned, [growl.NumFormants]float32{150, 320, 580, 1050, 1800}, growl.DistortionWavefolder, 4, 0.75},
	{"Space Creature", "Space Monster", CategorySciFi, 100, growl.NoiseBandpass, growl.OscillatorDetuned, [growl.NumFormants]float32{40, 90, 170, 310, 540}, growl.DistortionWaveshape, 5, 0.95},
	{"Artificial Intelligence", "AI Voice", CategorySciFi, 0, growl.NoiseWhite, growl.OscillatorWavetable, [growl.NumFormants]float32{350, 750, 1400, 2500, 4400}, growl.DistortionSoftClip, 0.8, 0.5},
	{"Hybrid", "Genetic Experiment", CategorySciFi, 9, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{120, 280, 520, 950, 1650}, growl.DistortionHarmonicBalancer, 3.5, 0.78},
	{"Cyber-Tiger", "Cybernetic Tiger", CategorySciFi, 11, growl.NoiseBrown, growl.OscillatorDPW, [growl.NumFormants]float32{100, 230, 430, 780, 1350}, growl.DistortionChebyshev, 4.2, 0.82},
	{"Energy Being", "Plasma Creature", CategorySciFi, 15, growl.NoiseBandpass, growl.OscillatorWavetable, [growl.NumFormants]float32{200, 500, 900, 1600, 2800}, growl.DistortionWavefolder, 4.5, 0.7},
	{"Quantum Entity", "Quantum Beast", CategorySciFi, 0, growl.NoisePinkMixed, growl.OscillatorDetuned, [growl.NumFormants]float32{150, 350, 650, 1200, 2100}, growl.DistortionChebyshev, 5, 0.9},
}

func (r factoryRow) params() *growl.AcousticParams {
	p := growl.NewDefaultParams()
	p.AnimalName = r.animal
	p.PresetName = r.name
	// disembodied voices carry size 0 and play at the smallest size
	p.SizeFeet = max(r.sizeFeet, growl.MinSizeFeet)
	p.Noise = r.noise
	p.Oscillator = r.oscillator
	for i, f := range r.formants {
		p.Formants[i].Frequency = max(f, growl.MinFormantFreq)
	}
	p.Distortion = r.distortion
	p.Drive = r.drive
	p.ResonanceMix = r.resMix
	return p
}
