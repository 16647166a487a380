package assistant

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/seed"
	"tableflip.dev/riverline/pkg/state"
)

type staticData struct {
	snap state.Snapshot
	err  error
}

func (s staticData) Snapshot(context.Context) (state.Snapshot, error) {
	return s.snap, s.err
}

func testSnapshot() state.Snapshot {
	d := seed.Defaults()
	return state.Snapshot{
		Routes: d.Routes,
		Stops:  d.Stops,
		Boats:  d.Boats[:2],
		Schedules: []model.Schedule{
			{ID: "s1", BoatID: "b1", StopID: "3", Direction: model.Upstream, DayOfWeek: model.Friday, ExpectedTime: "08:00"},
			{ID: "s2", BoatID: "gone", StopID: "nope", Direction: model.Downstream, DayOfWeek: model.Sunday, ExpectedTime: "17:30"},
		},
		Logs: []model.ArrivalLog{
			{ID: "l1", BoatID: "b2", StopID: "4", Direction: model.Downstream, Timestamp: time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC).UnixMilli(), Notes: "09:10 - atrasada"},
		},
	}
}

func TestBuildContext(t *testing.T) {
	got := BuildContext(testSnapshot(), time.UTC)

	for _, want := range []string{
		"=== DADOS DO APLICATIVO NAVEGAAMAZONAS ===",
		"- Lancha Glória de Deus (Capacidade: 60)",
		"- Expresso Cristalina (Capacidade: 80)",
		"- Lancha Glória de Deus: Coari às 08:00 (Sexta) - Subindo (-> Tabatinga)",
		"- Desconhecida: Desconhecido às 17:30 (Domingo) - Descendo (-> Manaus)",
		"- [02/03/2026, 09:15:00] Expresso Cristalina chegou em Tefé (Descendo (Capital)). Obs: 09:10 - atrasada",
	} {
		assert.Contains(t, got, want)
	}
}

func TestBuildContextPlaceholders(t *testing.T) {
	got := BuildContext(state.Snapshot{}, time.UTC)
	assert.Contains(t, got, "LANCHAS CADASTRADAS:\nNenhuma cadastrada")
	assert.Contains(t, got, "HORÁRIOS PREVISTOS (ITINERÁRIO):\nNenhum horário cadastrado")
	assert.Contains(t, got, "REGISTROS RECENTES DE CHEGADA (REAL):\nNenhum registro recente")
}

func TestBuildContextKeepsTwentyNewestLogs(t *testing.T) {
	snap := testSnapshot()
	snap.Logs = nil
	for i := 0; i < 25; i++ {
		snap.Logs = append(snap.Logs, model.ArrivalLog{
			ID: "l", BoatID: "b1", StopID: "1", Timestamp: int64(i) * 60_000, Notes: "n" + string(rune('a'+i)),
		})
	}
	got := BuildContext(snap, time.UTC)
	assert.Equal(t, 20, strings.Count(got, "chegou em"))
	assert.Contains(t, got, "Obs: ny")
	assert.NotContains(t, got, "Obs: na")
}

func TestSendAppendsReply(t *testing.T) {
	var got Request
	calls := 0
	a := New(ProviderFunc(func(_ context.Context, req Request) (Response, error) {
		calls++
		got = req
		return Response{Text: "A Glória de Deus sai sexta às 08:00."}, nil
	}), staticData{snap: testSnapshot()})

	msg, err := a.Send(context.Background(), Fast{}, "Quando sai a Glória?")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, RoleModel, msg.Role)
	assert.Equal(t, "A Glória de Deus sai sexta às 08:00.", msg.Text)
	assert.Equal(t, Fast{}, got.Mode)
	assert.Contains(t, got.Context, "Lancha Glória de Deus")
	assert.Nil(t, got.Location)

	h := a.History()
	require.Len(t, h, 3)
	assert.Equal(t, Welcome, h[0].Text)
	assert.Equal(t, RoleUser, h[1].Role)
	assert.Equal(t, "Quando sai a Glória?", h[1].Text)
	assert.Equal(t, msg, h[2])
}

func TestSendEmptyPrompt(t *testing.T) {
	a := New(ProviderFunc(func(context.Context, Request) (Response, error) {
		t.Fatal("provider must not be called")
		return Response{}, nil
	}), nil)

	_, err := a.Send(context.Background(), DeepReasoning{}, "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Len(t, a.History(), 1)
}

func TestSendBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	a := New(ProviderFunc(func(context.Context, Request) (Response, error) {
		close(started)
		<-release
		return Response{Text: "ok"}, nil
	}), nil)

	done := make(chan error, 1)
	go func() {
		_, err := a.Send(context.Background(), Fast{}, "primeira")
		done <- err
	}()
	<-started
	assert.True(t, a.Busy())

	_, err := a.Send(context.Background(), Fast{}, "segunda")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, a.Busy())
	assert.Len(t, a.History(), 3)
}

func TestSendMapsErrors(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"invalid key": {
			err:  errors.New("Error 400, Message: API key not valid. Please pass a valid API key., Status: INVALID_ARGUMENT"),
			want: msgInvalidKey,
		},
		"forbidden": {
			err:  errors.New("Error 403, Message: permission denied"),
			want: msgInvalidKey,
		},
		"missing key": {
			err:  ErrMissingAPIKey,
			want: msgInvalidKey,
		},
		"other": {
			err:  errors.New("connection reset by peer"),
			want: "Erro ao processar consulta: connection reset by peer",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a := New(ProviderFunc(func(context.Context, Request) (Response, error) {
				return Response{}, tc.err
			}), nil)
			msg, err := a.Send(context.Background(), Fast{}, "oi")
			require.NoError(t, err)
			assert.Equal(t, tc.want, msg.Text)
			assert.False(t, a.Busy())
		})
	}
}

func TestSendWithoutProvider(t *testing.T) {
	a := New(nil, nil)
	msg, err := a.Send(context.Background(), Fast{}, "oi")
	require.NoError(t, err)
	assert.Equal(t, msgInvalidKey, msg.Text)
}

func TestSendMediaModes(t *testing.T) {
	var contexts []string
	a := New(ProviderFunc(func(_ context.Context, req Request) (Response, error) {
		contexts = append(contexts, req.Context)
		if _, ok := req.Mode.(AudioTranscription); ok {
			return Response{Text: "que horas sai a lancha"}, nil
		}
		return Response{Text: "Lancha Crystal, 06:00"}, nil
	}), staticData{snap: testSnapshot()})
	ctx := context.Background()

	msg, err := a.Send(ctx, ImageAnalysis{Image: []byte{0xff, 0xd8}, Filename: "quadro.jpg"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Lancha Crystal, 06:00", msg.Text)

	msg, err = a.Send(ctx, AudioTranscription{Audio: []byte("ogg")}, "")
	require.NoError(t, err)
	assert.Equal(t, `Transcrição: "que horas sai a lancha"`, msg.Text)

	assert.Equal(t, []string{"", ""}, contexts)
	h := a.History()
	assert.Equal(t, "[Enviou uma imagem: quadro.jpg]", h[1].Text)
	assert.Equal(t, "[Áudio gravado]", h[3].Text)
}

func TestSendLocationGrounded(t *testing.T) {
	var got *LatLng
	a := New(ProviderFunc(func(_ context.Context, req Request) (Response, error) {
		got = req.Location
		return Response{Text: "Coari fica a 363 km.", Sources: []Source{{URI: "https://maps.google.com/?cid=1", Title: "Coari"}}}, nil
	}), nil)
	a.Locator = StaticLocator{Point: LatLng{Lat: -3.1, Lng: -60.0}}

	msg, err := a.Send(context.Background(), LocationGrounded{}, "Qual a distância até Coari?")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, LatLng{Lat: -3.1, Lng: -60.0}, *got)
	require.Len(t, msg.Sources, 1)
	assert.Equal(t, "Coari", msg.Sources[0].Title)
}

func TestLocatorFailureIsNotFatal(t *testing.T) {
	var calls atomic.Int32
	var got *LatLng
	a := New(ProviderFunc(func(_ context.Context, req Request) (Response, error) {
		calls.Add(1)
		got = req.Location
		return Response{Text: "ok"}, nil
	}), nil)
	a.LocationTimeout = 20 * time.Millisecond

	a.Locator = LocatorFunc(func(ctx context.Context) (LatLng, error) {
		<-ctx.Done()
		return LatLng{}, ctx.Err()
	})
	_, err := a.Send(context.Background(), LocationGrounded{}, "onde estou?")
	require.NoError(t, err)
	assert.Nil(t, got)

	a.Locator = LocatorFunc(func(context.Context) (LatLng, error) {
		return LatLng{}, ErrNoLocation
	})
	_, err = a.Send(context.Background(), LocationGrounded{}, "onde estou?")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.EqualValues(t, 2, calls.Load())
}

func TestContextFailureIsNotFatal(t *testing.T) {
	var got Request
	a := New(ProviderFunc(func(_ context.Context, req Request) (Response, error) {
		got = req
		return Response{Text: "ok"}, nil
	}), staticData{err: errors.New("disk gone")})

	_, err := a.Send(context.Background(), Fast{}, "oi")
	require.NoError(t, err)
	assert.Empty(t, got.Context)
}

func TestHistoryIsCopy(t *testing.T) {
	a := New(nil, nil)
	h := a.History()
	h[0].Text = "changed"
	assert.Equal(t, Welcome, a.History()[0].Text)
}

func TestSearch(t *testing.T) {
	a := New(ProviderFunc(func(context.Context, Request) (Response, error) {
		return Response{Text: "A Soberana chega em Tefé às 10:00."}, nil
	}), nil)
	_, err := a.Send(context.Background(), Fast{}, "quando chega a soberana?")
	require.NoError(t, err)

	assert.Len(t, a.Search(""), 3)
	assert.Len(t, a.Search("SOBERANA"), 2)
	assert.Len(t, a.Search("tefé"), 1)
	assert.Empty(t, a.Search("tabatinga"))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":         Fast{},
		"fast":     Fast{},
		"Maps":     LocationGrounded{},
		"thinking": DeepReasoning{},
		"pensar":   DeepReasoning{},
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("image")
	assert.Error(t, err)
}

func TestParseLatLng(t *testing.T) {
	p, err := ParseLatLng("-3.119, -60.0217")
	require.NoError(t, err)
	assert.Equal(t, LatLng{Lat: -3.119, Lng: -60.0217}, p)

	for _, bad := range []string{"", "-3.1", "a,b", "91,0", "0,181"} {
		_, err := ParseLatLng(bad)
		assert.Error(t, err, bad)
	}
}
