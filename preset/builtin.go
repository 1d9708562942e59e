package preset

var builtin = []Preset{
	{
		Name:        "Kick Drum (Tight)",
		Category:    Percussion,
		Description: "A short, punchy kick drum sound, good for electronic beats.",
		Command:     "raw osc:sine:120 env:0.01:0.15:0:0.01 dur:0.16 filter:lowpass:400:2",
	},
	{
		Name:        "808 Kick",
		Category:    Percussion,
		Description: "A kick with a characteristic pitch drop, mimicking a classic drum machine.",
		Command:     "raw osc:sine:150 env:0.01:0.3:0:0.05 dur:0.35 lfo:sine:30:-100:frequency filter:lowpass:500",
	},
	{
		Name:        "Snare Drum",
		Category:    Percussion,
		Description: `A blend of noise for the "snap" and a sine wave for the "body".`,
		Command:     "raw noise:white env:0.01:0.1:0:0.05 dur:0.16 filter:bandpass:1500:5 osc:sine:200",
	},
	{
		Name:        "Closed Hi-Hat",
		Category:    Percussion,
		Description: "A crisp, closed hi-hat sound using filtered white noise.",
		Command:     "raw noise:white env:0.01:0.03:0:0.01 dur:0.05 filter:highpass:8000:6",
	},
	{
		Name:        "Open Hi-Hat",
		Category:    Percussion,
		Description: "A sustained, metallic open hi-hat with a slow decay.",
		Command:     "raw noise:white env:0.01:0.3:0.05:0.1 dur:0.4 filter:highpass:7000:5 osc:square:300:10 osc:square:450:-10",
	},
	{
		Name:        "Cymbal Crash",
		Category:    Percussion,
		Description: "A complex, noisy crash with multiple oscillators and reverb.",
		Command:     "raw noise:white dur:1.5 env:0.01:1.4:0:0.1 filter:highpass:3000:2 osc:square:900:15 osc:square:1200:-15 osc:square:1500:10 distort:10 reverb:1:0.4",
	},
	{
		Name:        "Low Tom",
		Category:    Percussion,
		Description: "A pitched tom drum with a downward pitch envelope.",
		Command:     "raw osc:sine:150 env:0.01:0.2:0:0.05 dur:0.25 lfo:sine:20:-50:frequency",
	},
	{
		Name:        "Laser Blast",
		Category:    SoundEffects,
		Description: `A classic sci-fi laser "pew" with a rapid downward pitch sweep.`,
		Command:     "raw osc:square:1200 env:0.01:0.15:0:0.01 dur:0.16 lfo:sine:40:-1000:frequency",
	},
	{
		Name:        "Power Up",
		Category:    SoundEffects,
		Description: "A video game-style power-up sound with a rising pitch and delay.",
		Command:     "raw osc:sawtooth:440 env:0.05:0.2:0.1:0.1 dur:0.4 lfo:sine:10:800:frequency delay:0.1:0.3:0.3",
	},
	{
		Name:        "Coin Collect",
		Category:    SoundEffects,
		Description: "A bright, two-tone sound reminiscent of collecting a coin in a game.",
		Command:     "raw osc:square:1046 env:0.01:0.1:0:0.01 dur:0.12 osc:square:1244:5",
	},
	{
		Name:        "Explosion",
		Category:    SoundEffects,
		Description: "A rumbling explosion using distorted brown noise and a modulated filter.",
		Command:     "raw noise:brown dur:1 env:0.05:0.9:0:0.1 filter:lowpass:500:5 distort:80 lfo:sine:5:-400:filterCutoff",
	},
	{
		Name:        "Alarm Siren",
		Category:    SoundEffects,
		Description: "A piercing alarm sound created by modulating frequency with a square LFO.",
		Command:     "raw osc:sine:800 dur:2 lfo:square:4:200:frequency env:0.1:0.1:0.8:1",
	},
	{
		Name:        "Sci-Fi Beep",
		Category:    SoundEffects,
		Description: "A simple, clean computer beep for user interfaces.",
		Command:     "raw osc:sine:1500 env:0.001:0.05:0:0.01 dur:0.06",
	},
	{
		Name:        "Spaceship Hum",
		Category:    SoundEffects,
		Description: "The low, steady hum of a starship engine, with subtle modulation.",
		Command:     "raw osc:sawtooth:80:-10 dur:5 env:1:1:0.8:2 osc:sawtooth:80:10 lfo:sine:0.5:5:frequency filter:lowpass:400:2",
	},
	{
		Name:        "Water Drop",
		Category:    SoundEffects,
		Description: "A synthesized water droplet with a pitch drop and resonant filter.",
		Command:     "raw osc:sine:900 env:0.01:0.1:0:0.05 dur:0.16 filter:lowpass:1000:10 lfo:sine:30:-600:frequency reverb:0.5:0.6",
	},
	{
		Name:        "Simple Flute",
		Category:    Instruments,
		Description: "A gentle flute-like sound with vibrato and a touch of reverb.",
		Command:     "raw osc:sine:880 dur:1 env:0.1:0.2:0.5:0.2 lfo:sine:6:20:frequency reverb:0.5:0.3",
	},
	{
		Name:        "Plucked String",
		Category:    Instruments,
		Description: "A basic plucked string or synth-bass sound.",
		Command:     "raw osc:triangle:330 dur:0.8 env:0.005:0.7:0:0.1 filter:lowpass:2000:3",
	},
	{
		Name:        "8-Bit Jump",
		Category:    Instruments,
		Description: "The sound of a character jumping in a retro video game.",
		Command:     "raw osc:square:600 env:0.01:0.1:0.1:0.05 dur:0.2 lfo:sine:15:400:frequency",
	},
	{
		Name:        "Church Organ",
		Category:    Instruments,
		Description: "A powerful, multi-oscillator organ sound with heavy reverb.",
		Command:     "raw osc:sawtooth:440 dur:3 env:0.2:0.5:0.7:1 osc:sawtooth:880:5 osc:sawtooth:220:-5 reverb:2:0.5",
	},
	{
		Name:        "Dark Drone",
		Category:    PadsAndDrones,
		Description: "A low, ominous drone with a slowly sweeping filter.",
		Command:     "raw osc:sawtooth:110 dur:8 env:3:2:0.8:3 filter:lowpass:300:1 lfo:sine:0.2:50:filterCutoff reverb:4:0.6",
	},
	{
		Name:        "Crystal Pad",
		Category:    PadsAndDrones,
		Description: "A bright, shimmering pad with detuned oscillators and delay.",
		Command:     "raw osc:triangle:880:7 dur:5 env:1.5:1:0.6:2 osc:triangle:1320:-7 delay:0.5:0.4:0.4 reverb:3:0.5 lfo:sine:0.3:20:frequency",
	},
	{
		Name:        "Warp Drive",
		Category:    PadsAndDrones,
		Description: "A sci-fi engine sound with a swirling, auto-panning filter.",
		Command:     "raw noise:white dur:4 env:1:0.5:0.5:1.5 filter:bandpass:1000:10 lfo:sine:1:800:filterCutoff distort:20 lfo:sine:0.3:1:pan",
	},
	{
		Name:        "Metallic Clang",
		Category:    Abstract,
		Description: "A harsh, dissonant metallic impact.",
		Command:     "raw osc:square:500:10 dur:1 env:0.005:0.9:0:0.1 osc:square:753:-10 osc:square:1100:5 distort:40 filter:highpass:800:3 reverb:0.8:0.4",
	},
	{
		Name:        "Digital Glitch",
		Category:    Abstract,
		Description: "A short, sharp burst of digital noise and distortion.",
		Command:     "raw noise:white dur:0.1 env:0.001:0.05:0:0.01 filter:bandpass:4000:20 lfo:square:80:3000:filterCutoff distort:90",
	},
	{
		Name:        "Teleporter",
		Category:    Abstract,
		Description: "The sound of a matter stream being activated, with a rising filter sweep.",
		Command:     "raw noise:pink dur:1.5 env:0.5:0.2:0.1:0.5 filter:bandpass:2000:8 lfo:sine:5:1800:filterCutoff",
	},
}
