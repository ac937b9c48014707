package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()

	assert.Equal(t, 8080, GetInt("server.port"))
	assert.Equal(t, "en", GetString("pipeline.target_language"))
	assert.Equal(t, int64(20*1024*1024), viper.GetInt64("pipeline.max_audio_bytes"))
	assert.Equal(t, 2, GetInt("pipeline.workers"))
	assert.Equal(t, "whisper-1", GetString("whisper.model"))
	assert.Equal(t, 3*time.Minute, GetDuration("pipeline.fetch_timeout"))
	assert.True(t, viper.GetBool("rate_limiting.enabled"))
}

func TestValidateAutoCorrect(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("pipeline.workers", -1)
	viper.Set("pipeline.max_audio_bytes", 0)

	require.NoError(t, validate())

	assert.Equal(t, 2, GetInt("pipeline.workers"))
	assert.Equal(t, int64(20*1024*1024), viper.GetInt64("pipeline.max_audio_bytes"))
}

func TestValidateRejectsBadPort(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("server.port", 0)

	assert.Error(t, validate())
}

func TestValidateRejectsPlaceholderInProduction(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()
	viper.Set("environment", "production")
	viper.Set("youtube.api_keys", []string{"YOUR_API_KEY"})

	assert.Error(t, validate())
}

func TestConfigStructValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Server:   ServerConfig{Port: 8080},
				Pipeline: PipelineConfig{DownloadsRoot: "./downloads", Workers: 4, MaxAudioBytes: 1024},
			},
			wantErr: false,
		},
		{
			name: "missing downloads root",
			config: Config{
				Server: ServerConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			config: Config{
				Server:   ServerConfig{Port: 70000},
				Pipeline: PipelineConfig{DownloadsRoot: "./downloads"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Positive(t, tt.config.Pipeline.Workers)
			assert.Positive(t, tt.config.Pipeline.MaxAudioBytes)
		})
	}
}
