package tts

import (
	"context"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

type GoogleTTS struct {
	c     *texttospeech.Client
	voice string
}

func NewGoogleTTS(ctx context.Context, voice string) (*GoogleTTS, error) {
	c, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if voice == "" {
		voice = "en-US-Neural2-D"
	}
	return &GoogleTTS{c: c, voice: voice}, nil
}

func (g *GoogleTTS) Close() error { return g.c.Close() }

func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	// voice names are "<lang>-<region>-<model>-<variant>"
	lang := g.voice
	if parts := strings.SplitN(g.voice, "-", 3); len(parts) >= 2 {
		lang = parts[0] + "-" + parts[1]
	}

	resp, err := g.c.SynthesizeSpeech(ctx, &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: lang,
			Name:         g.voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.AudioContent, nil
}
