package app

import (
    "bufio"
    "errors"
    "os"
    "strings"
)

// LoadEnvFiles loads dotenv files of KEY=VALUE pairs into the process
// environment. Variables already set by the shell win over file values;
// among the files, later ones override earlier ones. Missing files are
// skipped. Lines starting with '#', blank lines, and lines without '=' are
// ignored; an optional "export " prefix and surrounding quotes are stripped.
func LoadEnvFiles(paths ...string) error {
    merged := map[string]string{}
    for _, p := range paths {
        if strings.TrimSpace(p) == "" {
            continue
        }
        if err := parseEnvFile(p, merged); err != nil {
            if errors.Is(err, os.ErrNotExist) {
                continue
            }
            return err
        }
    }
    for k, v := range merged {
        if _, set := os.LookupEnv(k); set {
            continue
        }
        if err := os.Setenv(k, v); err != nil {
            return err
        }
    }
    return nil
}

func parseEnvFile(path string, into map[string]string) error {
    f, err := os.Open(path)
    if err != nil {
        return err
    }
    defer f.Close()

    scanner := bufio.NewScanner(f)
    for scanner.Scan() {
        line := strings.TrimSpace(scanner.Text())
        if line == "" || strings.HasPrefix(line, "#") {
            continue
        }
        line = strings.TrimPrefix(line, "export ")
        key, val, ok := strings.Cut(line, "=")
        key = strings.TrimSpace(key)
        if !ok || key == "" {
            continue
        }
        into[key] = unquote(strings.TrimSpace(val))
    }
    return scanner.Err()
}

func unquote(val string) string {
    if len(val) >= 2 {
        if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
            return val[1 : len(val)-1]
        }
    }
    return val
}
