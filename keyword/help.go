package keyword

// HelpText is printed by "raw" without arguments and by "raw -h".
const HelpText = `Usage: raw <keywords...>
Generates a sound on-the-fly from keyword arguments.
Each keyword modifies a part of the sound blueprint, processed in order.

Example: raw osc:sawtooth:220 filter:lowpass:800 dur:0.5

--- KEYWORDS ---

osc:<type>:<freq>:<detune>
  Adds an oscillator source. Clears default source on first use.
  - type: sine, square, sawtooth, triangle (default: sine)
  - freq: frequency in Hz (default: 440)
  - detune: cents (default: 0)
  Example: raw osc:sawtooth:220 osc:sine:440:10

noise:<type>
  Adds a noise source. Clears default source on first use.
  - type: white, brown, pink (default: white)
  Example: raw noise:pink

env:<attack>:<decay>:<sustain>:<release>
  Sets the ADSR envelope. All values in seconds.
  - Defaults: 0.01:0.1:0.1:0.2
  Example: raw env:0.01:0.2:0.5:1

filter:<type>:<freq>:<q>:<gain>
  Sets a biquad filter.
  - type: lowpass, highpass, bandpass, peaking, lowshelf, highshelf,
    notch, allpass (default: lowpass)
  - freq: frequency in Hz (default: 1000)
  - q: Q-factor (default: 1)
  - gain: for peaking/shelving filters (default: 0)
  Example: raw filter:bandpass:1500:5

filter:iir:<b0,b1,...>:<a0,a1,...>
  Sets a direct-form IIR filter from coefficient lists.
  Example: raw noise:white filter:iir:0.1,0.1:1,-0.8

reverb:<decay>:<mix>:<reverse>
  Adds a convolution reverb send (defaults: 1:0.5:false).

delay:<time>:<feedback>:<mix>
  Adds a feedback delay send (defaults: 0.3:0.4:0.5).

dur:<seconds>
  Sets the total sound duration (default: 0.5).

lfo:<type>:<rate>:<depth>:<target>
  Modulates a parameter (defaults: sine:5:100:frequency).
  - target: frequency, filtercutoff, filterq, amplitude, pan

distort:<amount>:<oversample>
  Adds waveshaper distortion (defaults: 50:none). Oversample: none, 2x, 4x.

pan:<position>  or  pan:positional:<x>:<y>:<z>
  Places the sound in the stereo field, -1 left to 1 right.

comp:<threshold>:<knee>:<ratio>:<attack>:<release>
  Adds a compressor (defaults: -24:30:12:0.003:0.25).

set:<path>:<value>
  Sets a single property on the blueprint. Useful for fine-tuning.
  - path: dot-notation path to property (e.g., envelope.attack or sources.0.frequency)
  - value: the new value for the property.
  Example: raw filter:lowpass set:filter.Q:10

preset:<name>
  Loads a sound preset as a base. Other keywords will modify it.
  - name: The name of the preset (e.g., "808 Kick"). Quotes are optional.
  Example: raw preset:"808 Kick" dur:0.5

--- FULL KEYWORD LIST ---
preset, osc, noise, filter, env, reverb, delay, dur, lfo, distort, pan, comp, set

--- EXAMPLES ---

# A simple kick drum
raw osc:sine:150 env:0.01:0.2:0:0.1 dur:0.3 filter:lowpass:400

# A simple hi-hat
raw noise:white env:0.01:0.05:0:0.01 dur:0.1 filter:highpass:7000:5

# Shimmering pad
raw osc:sawtooth:220:5 osc:sawtooth:220:-5 env:1:1:0.5:2 dur:4 filter:lowpass:1000:2 lfo:sine:4:20 reverb:3:0.7`
